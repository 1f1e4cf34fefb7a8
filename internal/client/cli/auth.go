package cli

import (
	"context"

	"github.com/dmitrijs2005/citizenportal/internal/common"
)

func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Register creates an account. It does not sign in.
func (a *App) Register(ctx context.Context, args []string) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.portal.Register(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.println("Registered", user.Email+". You can log in now.")
	return nil
}

// Login signs in and refreshes the session state and the settings, which a
// private portal only hands out to signed-in users.
func (a *App) Login(ctx context.Context, args []string) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.portal.Login(ctx, email, string(password)); err != nil {
		return err
	}

	a.publisher.Poll(ctx)
	if a.settings == nil {
		a.loadSettings(ctx)
	}
	a.println("Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context, args []string) error {
	err := a.portal.Logout(ctx)
	a.publisher.Poll(ctx)
	if err != nil {
		a.logger.Warn(ctx, "logout not confirmed by server", "error", err)
	}
	a.println("Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context, args []string) error {
	user, err := a.portal.Me(ctx)
	if err != nil {
		return err
	}
	a.printf("%s (%s)\n", user.Email, user.Role)
	return nil
}
