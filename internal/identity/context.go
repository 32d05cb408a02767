// Package identity carries the caller's identity through request contexts.
//
// Real is who authenticated. Acting is who the request operates as; it
// differs from Real only while an admin impersonates another user.
package identity

import "context"

type ctxKey string

const keyIdentity ctxKey = "identity"

type User struct {
	ID      uint64
	Email   string
	IsAdmin bool
}

type Identity struct {
	Real   User
	Acting User
}

func (i Identity) Impersonating() bool {
	return i.Real.ID != i.Acting.ID
}

// Self builds an identity acting as the authenticated user.
func Self(u User) Identity {
	return Identity{Real: u, Acting: u}
}

func With(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, keyIdentity, id)
}

// From returns the identity stored in ctx, if any.
func From(ctx context.Context) (Identity, bool) {
	v, ok := ctx.Value(keyIdentity).(Identity)
	return v, ok
}
