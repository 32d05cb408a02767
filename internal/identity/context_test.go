package identity

import (
	"context"
	"testing"
)

func TestWithAndFrom(t *testing.T) {
	if _, ok := From(context.Background()); ok {
		t.Fatal("empty context must not carry an identity")
	}

	admin := User{ID: 1, Email: "admin@example.com", IsAdmin: true}
	fan := User{ID: 2, Email: "fan@example.com"}

	ctx := With(context.Background(), Self(admin))
	got, ok := From(ctx)
	if !ok || got.Acting.Email != admin.Email || got.Impersonating() {
		t.Fatalf("got=%+v ok=%v", got, ok)
	}

	ctx = With(ctx, Identity{Real: admin, Acting: fan})
	got, _ = From(ctx)
	if !got.Impersonating() || got.Acting.ID != 2 || got.Real.ID != 1 {
		t.Fatalf("impersonation not carried: %+v", got)
	}
}
