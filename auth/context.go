package auth

import (
	"sort"

	"github.com/samber/mo"

	"modbot/models"
)

// Context is the resolved acting-identity for one dispatch. It is immutable
// and never reused across dispatches - role membership can change between
// events, so claims are resolved per dispatch.
type Context struct {
	userID  mo.Option[string]
	guildID string
	claims  map[models.Claim]struct{}
}

// NewContext builds an auth context from a resolved claim set.
func NewContext(userID mo.Option[string], guildID string, claims []models.Claim) *Context {
	claimSet := make(map[models.Claim]struct{}, len(claims))
	for _, claim := range claims {
		claimSet[claim] = struct{}{}
	}
	return &Context{
		userID:  userID,
		guildID: guildID,
		claims:  claimSet,
	}
}

// EmptyContext returns a context with no actor and no claims. Handlers that
// require a claim fail closed against it.
func EmptyContext(guildID string) *Context {
	return &Context{
		userID:  mo.None[string](),
		guildID: guildID,
		claims:  map[models.Claim]struct{}{},
	}
}

func (c *Context) UserID() mo.Option[string] {
	return c.userID
}

func (c *Context) GuildID() string {
	return c.guildID
}

// HasClaim reports whether the acting user holds the given claim.
func (c *Context) HasClaim(claim models.Claim) bool {
	_, ok := c.claims[claim]
	return ok
}

// Claims returns the resolved claim set in stable order.
func (c *Context) Claims() []models.Claim {
	claims := make([]models.Claim, 0, len(c.claims))
	for claim := range c.claims {
		claims = append(claims, claim)
	}
	sort.Slice(claims, func(i, j int) bool { return claims[i] < claims[j] })
	return claims
}
