package permissions

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Capability couples the permission bit a command requires with the
// human-readable name used in missing-permission replies.
type Capability struct {
	name      string
	bit       int64
	ownerOnly bool
}

func (c Capability) Name() string { return c.name }

var (
	// CapNone marks commands anyone may run.
	CapNone = Capability{}
	// CapOwnerOnly is never satisfied by platform permissions, only by the
	// primary owner identity.
	CapOwnerOnly = Capability{name: "Bot Owner", ownerOnly: true}

	CapBanMembers      = Capability{name: "Ban Members", bit: discordgo.PermissionBanMembers}
	CapKickMembers     = Capability{name: "Kick Members", bit: discordgo.PermissionKickMembers}
	CapManageRoles     = Capability{name: "Manage Roles", bit: discordgo.PermissionManageRoles}
	CapManageChannels  = Capability{name: "Manage Channels", bit: discordgo.PermissionManageChannels}
	CapManageNicknames = Capability{name: "Manage Nicknames", bit: discordgo.PermissionManageNicknames}
	CapManageMessages  = Capability{name: "Manage Messages", bit: discordgo.PermissionManageMessages}
	CapManageServer    = Capability{name: "Manage Server", bit: discordgo.PermissionManageServer}
	CapAdministrator   = Capability{name: "Administrator", bit: discordgo.PermissionAdministrator}
)

// OwnerSource reports membership in the additional-owner set.
type OwnerSource interface {
	IsOwner(ctx context.Context, userID string) (bool, error)
}

type Resolver struct {
	primaryOwnerID string
	owners         OwnerSource
}

func NewResolver(primaryOwnerID string, owners OwnerSource) *Resolver {
	return &Resolver{primaryOwnerID: primaryOwnerID, owners: owners}
}

func (r *Resolver) IsPrimaryOwner(userID string) bool {
	return userID != "" && userID == r.primaryOwnerID
}

// Authorize decides whether an actor may perform a capability-gated action.
// granted is the actor's resolved platform permission set; hasMember is false
// when no guild membership could be resolved, which counts as a failed check.
// Owner-set lookups that error are treated as "not an owner".
func (r *Resolver) Authorize(ctx context.Context, actorID string, granted int64, hasMember bool, cap Capability) bool {
	if r.IsPrimaryOwner(actorID) {
		return true
	}
	if cap.ownerOnly {
		// Only the primary owner may manage the owner set itself.
		return false
	}
	if r.owners != nil {
		if ok, err := r.owners.IsOwner(ctx, actorID); err == nil && ok {
			return true
		}
	}
	if cap.bit == 0 {
		return true
	}
	if !hasMember {
		return false
	}
	return granted&cap.bit != 0 || granted&discordgo.PermissionAdministrator != 0
}
