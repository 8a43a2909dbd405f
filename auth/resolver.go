package auth

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"modbot/clients"
	"modbot/services"
)

// Resolver derives the acting user's claim set from their guild roles.
// Resolution runs once per dispatch, before any handler executes.
type Resolver struct {
	discordClient clients.DiscordClient
	claimsService services.ClaimsService
}

func NewResolver(discordClient clients.DiscordClient, claimsService services.ClaimsService) *Resolver {
	return &Resolver{
		discordClient: discordClient,
		claimsService: claimsService,
	}
}

// Resolve produces the auth context for one dispatch. It never aborts the
// dispatch: when the actor is absent or resolution fails, the returned
// context carries an empty claim set and the error describes what went wrong.
func (r *Resolver) Resolve(
	ctx context.Context,
	actorID mo.Option[string],
	guildID string,
) (*Context, error) {
	userID, hasActor := actorID.Get()
	if !hasActor {
		log.Printf("🔍 No acting user for event in guild %s - resolving empty claim set", guildID)
		return EmptyContext(guildID), nil
	}

	member, err := r.discordClient.GetGuildMember(ctx, guildID, userID)
	if err != nil {
		return EmptyContext(guildID), fmt.Errorf(
			"failed to fetch guild member %s in guild %s: %w", userID, guildID, err)
	}

	claims, err := r.claimsService.GetClaimsForRoles(ctx, guildID, member.RoleIDs)
	if err != nil {
		return EmptyContext(guildID), fmt.Errorf(
			"failed to resolve claims for user %s in guild %s: %w", userID, guildID, err)
	}

	log.Printf("🔐 Resolved %d claims for user %s in guild %s", len(claims), userID, guildID)
	return NewContext(mo.Some(userID), guildID, claims), nil
}
