package auth

import (
	"context"

	"taskhub/internal/errors"
	"taskhub/internal/model"
)

// UserResolver loads the live user record for a username claim. Implemented
// by the user service; the gate never trusts the token alone.
type UserResolver interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// Gate resolves a caller's identity from a bearer token and enforces role
// and ownership checks. Per request the flow is decode -> denylist check ->
// live user lookup -> role/ownership check; no state survives the request.
type Gate struct {
	jwt      *JWTService
	denylist TokenDenylist
	users    UserResolver
}

// NewGate creates an authorization gate.
func NewGate(jwt *JWTService, denylist TokenDenylist, users UserResolver) *Gate {
	return &Gate{jwt: jwt, denylist: denylist, users: users}
}

// Authenticate decodes the token and resolves the live user it names.
// Every failure mode is an Authentication error — including a user deleted
// since the token was issued, so credential failures never leak whether an
// entity exists.
func (g *Gate) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := g.jwt.DecodeToken(token)
	if err != nil {
		return nil, err
	}
	return g.ResolveIdentity(ctx, claims)
}

// ResolveIdentity turns already-decoded claims into a live user record,
// rejecting revoked tokens and vanished users.
func (g *Gate) ResolveIdentity(ctx context.Context, claims *Claims) (*model.User, error) {
	if claims.ID != "" && g.denylist.IsRevoked(ctx, claims.ID) {
		return nil, errors.NewAuthentication("token revoked")
	}

	user, err := g.users.GetByUsername(ctx, claims.Username)
	if err != nil {
		// deliberately not NotFound: a valid-looking token for a deleted
		// user is a credential failure
		return nil, errors.NewAuthentication("invalid credentials")
	}
	return user, nil
}

// loginDummyHash is compared against when the username does not exist, so
// the unknown-user path pays the same bcrypt cost as a wrong password and
// response timing cannot tell the two apart.
var loginDummyHash, _ = HashPassword("login-timing-equalizer")

// Login verifies a username/password pair against the live user record.
// Unknown usernames and wrong passwords produce the same Authentication
// error.
func (g *Gate) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := g.users.GetByUsername(ctx, username)
	if err != nil {
		_, _ = VerifyPassword(password, loginDummyHash)
		return nil, errors.NewAuthentication("invalid username or password")
	}
	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, errors.NewAuthentication("invalid username or password")
	}
	return user, nil
}

// Logout revokes the token carried by the claims for the rest of its
// validity window.
func (g *Gate) Logout(ctx context.Context, claims *Claims) error {
	if claims.ID == "" {
		return errors.NewAuthentication("invalid token")
	}
	return g.denylist.Revoke(ctx, claims.ID, claims.RemainingValidity())
}

// RequireRole rejects callers whose role does not meet the required one.
// Admin satisfies every requirement. The switch is exhaustive over the
// closed role set; an unknown role never passes.
func (g *Gate) RequireRole(caller *model.User, required model.Role) error {
	switch caller.Role {
	case model.RoleAdmin:
		return nil
	case model.RoleUser:
		if required == model.RoleUser {
			return nil
		}
		return errors.NewAuthorization(string(required))
	default:
		return errors.NewAuthorization(string(required))
	}
}

// CanModifyTask permits task mutation for admins, the creator, and the
// current assignee.
func (g *Gate) CanModifyTask(caller *model.User, task *model.Task) error {
	if caller.Role == model.RoleAdmin || task.CreatedBy == caller.ID {
		return nil
	}
	if task.AssignedTo != nil && *task.AssignedTo == caller.ID {
		return nil
	}
	return errors.NewAuthorization(string(model.RoleAdmin))
}

// CanDeleteTask permits task deletion for admins and the creator only.
func (g *Gate) CanDeleteTask(caller *model.User, task *model.Task) error {
	if caller.Role == model.RoleAdmin || task.CreatedBy == caller.ID {
		return nil
	}
	return errors.NewAuthorization(string(model.RoleAdmin))
}

// CanModifyUser permits user mutation for admins and the user themselves.
func (g *Gate) CanModifyUser(caller *model.User, targetID string) error {
	if caller.Role == model.RoleAdmin || caller.ID.String() == targetID {
		return nil
	}
	return errors.NewAuthorization(string(model.RoleAdmin))
}
