package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"contas/internal/log"
)

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when omitted)")
	fs.Parse(args)

	if *email == "" {
		return fmt.Errorf("login: -email is required")
	}
	pw := *password
	if pw == "" {
		var err error
		pw, err = promptSecret("password: ")
		if err != nil {
			return err
		}
	}

	token, err := a.client.Login(ctx, *email, pw)
	if err != nil {
		return err
	}
	if err := a.tokens.Save(token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	a.logger.Info("logged in", log.FieldOperation, log.OpLogin)
	fmt.Println("logged in")
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when omitted)")
	fs.Parse(args)

	if *email == "" {
		return fmt.Errorf("register: -email is required")
	}
	pw := *password
	if pw == "" {
		var err error
		pw, err = promptSecret("password: ")
		if err != nil {
			return err
		}
	}

	user, err := a.client.Register(ctx, *email, pw)
	if err != nil {
		return err
	}
	fmt.Printf("registered %s (id %d), run 'contas login' next\n", user.Email, user.ID)
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	a.warnIfTokenStale()
	user, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s (id %d)\n", user.Email, user.ID)
	return nil
}

// promptSecret reads a line from stdin. The terminal keeps echoing;
// for scripted use pass -password instead.
func promptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
