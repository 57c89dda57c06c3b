package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/jrsteele09/go-admin-session/session"
	"github.com/jrsteele09/go-admin-session/transport"
)

type commands struct {
	controller *session.Controller
	transport  transport.Transport
	in         io.Reader
	out        io.Writer
}

func (c *commands) dispatch(ctx context.Context, name string, args []string) error {
	switch name {
	case "login":
		return c.login(ctx, args)
	case "login-code":
		return c.loginByCode(ctx, args)
	case "send-code":
		return c.sendCode(ctx, args)
	case "whoami":
		return c.whoami()
	case "logout":
		return c.logout(ctx)
	default:
		return fmt.Errorf("unknown command %q", name)
	}
}

func (c *commands) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	userName := fs.String("u", "", "user name")
	password := fs.String("p", "", "password, prompted for when empty")
	redirect := fs.Bool("redirect", true, "return to the last page after login")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *userName == "" {
		return errors.New("login: -u is required")
	}

	if *password == "" {
		pw, err := c.prompt("Password: ")
		if err != nil {
			return err
		}
		*password = pw
	}
	return c.controller.Login(ctx, *userName, *password, *redirect)
}

func (c *commands) loginByCode(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login-code", flag.ContinueOnError)
	phone := fs.String("phone", "", "phone number")
	code := fs.String("code", "", "verification code")
	redirect := fs.Bool("redirect", true, "return to the last page after login")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *phone == "" || *code == "" {
		return errors.New("login-code: -phone and -code are required")
	}
	return c.controller.LoginByCode(ctx, *phone, *code, *redirect)
}

func (c *commands) sendCode(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("send-code", flag.ContinueOnError)
	phone := fs.String("phone", "", "phone number")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *phone == "" {
		return errors.New("send-code: -phone is required")
	}

	sender, ok := c.transport.(transport.CaptchaSender)
	if !ok {
		return session.ErrUnsupported
	}
	if err := sender.SendCaptcha(ctx, *phone); err != nil {
		return fmt.Errorf("send-code: %w", err)
	}
	fmt.Fprintf(c.out, "verification code sent to %s\n", *phone)
	return nil
}

func (c *commands) whoami() error {
	if !c.controller.IsLogin() {
		fmt.Fprintln(c.out, "not logged in")
		return nil
	}

	info := c.controller.UserInfo()
	fmt.Fprintf(c.out, "userId:   %s\n", info.UserID)
	fmt.Fprintf(c.out, "userName: %s\n", info.UserName)
	fmt.Fprintf(c.out, "roles:    %s\n", strings.Join(info.Roles, ","))
	fmt.Fprintf(c.out, "buttons:  %s\n", strings.Join(info.Buttons, ","))
	if c.controller.IsStaticSuper() {
		fmt.Fprintln(c.out, "super:    yes")
	}
	return nil
}

func (c *commands) logout(ctx context.Context) error {
	if err := c.controller.ResetStore(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Fprintln(c.out, "logged out")
	return nil
}

func (c *commands) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
