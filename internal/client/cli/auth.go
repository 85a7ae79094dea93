package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/distory/internal/client/api"
	"github.com/dmitrijs2005/distory/internal/common"
)

func (a *App) login(ctx context.Context) {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer common.WipeByteArray(password)

	res, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			fmt.Println("Server unavailable; cached stories are still readable with 'list' once logged in.")
		}
		fmt.Println("Login unsuccessful:", err)
		return
	}

	a.userName = res.Name
	fmt.Println("Login successful. Welcome,", res.Name)
}

func (a *App) register(ctx context.Context) {

	name, err := GetSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, name, email, string(password)); err != nil {
		fmt.Println("Registration unsuccessful:", err)
		return
	}

	fmt.Println("Registered. You can now login.")
}

func (a *App) logout(ctx context.Context) {
	if err := a.authService.Logout(ctx); err != nil {
		fmt.Println("error:", err)
		return
	}
	a.userName = ""
	fmt.Println("Logged out.")
}
