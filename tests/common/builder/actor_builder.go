//go:build unit || e2e

package builder

import (
	"amenity-booking/internal/domain/user"

	"github.com/google/uuid"
)

type ActorBuilder struct {
	actor user.Actor
}

func NewActorBuilder() *ActorBuilder {
	id := uuid.New()
	return &ActorBuilder{actor: user.Actor{
		UserID: id,
		Role:   user.RoleResident,
		Email:  "resident-" + id.String()[:8] + "@example.com",
	}}
}

func (b *ActorBuilder) Admin() *ActorBuilder {
	b.actor.Role = user.RoleAdmin
	return b
}

func (b *ActorBuilder) InCommunity(id uuid.UUID) *ActorBuilder {
	b.actor.CommunityID = id
	return b
}

func (b *ActorBuilder) WithEmail(email string) *ActorBuilder {
	b.actor.Email = email
	return b
}

func (b *ActorBuilder) Build() user.Actor {
	return b.actor
}
