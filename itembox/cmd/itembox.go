// Command-line interface for managing itembox accounts
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"itembox/itembox/config"
	"itembox/itembox/security"
	"itembox/itembox/sources/psql"
	"itembox/itembox/sources/psql/dao"
	"itembox/itembox/utils/color"
	"itembox/itembox/utils/jsonutils"
	"itembox/itembox/utils/logging"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const usage = `itembox admin usage:
  itembox create-user <email> <password> [username]
  itembox disable-user <id>
  itembox enable-user <id>
  itembox list-users [-json]`

var errUsage = errors.New(usage)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.ColorError("config error: "+err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		fmt.Fprintln(os.Stderr, color.ColorError("database connection error: "+err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	users := dao.NewUserDAO(db.DB, security.NewHasher(bcrypt.DefaultCost))
	if err := run(ctx, users, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, color.ColorError(err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, users *dao.UserDAO, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "create-user":
		if len(args) < 3 || len(args) > 4 {
			return errUsage
		}
		username := ""
		if len(args) == 4 {
			username = args[3]
		}
		user, err := users.CreateUser(ctx, args[1], args[2], username, nil)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, color.ColorInfo(fmt.Sprintf("created user %d (%s)", user.ID, user.Email)))
		return nil
	case "disable-user", "enable-user":
		if len(args) != 2 {
			return errUsage
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[1])
		}
		disabled := args[0] == "disable-user"
		if err := users.SetDisabled(ctx, id, disabled); err != nil {
			return err
		}
		msg := fmt.Sprintf("user %d disabled=%t", id, disabled)
		if disabled {
			msg = color.ColorWarning(msg)
		} else {
			msg = color.ColorInfo(msg)
		}
		fmt.Fprintln(out, msg)
		return nil
	case "list-users":
		if len(args) > 2 || (len(args) == 2 && args[1] != "-json") {
			return errUsage
		}
		list, err := users.ListUsers(ctx)
		if err != nil {
			return err
		}
		if len(args) == 2 {
			fmt.Fprintln(out, jsonutils.ToJSON(list))
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tEMAIL\tUSERNAME\tDISABLED\tCREATED")
		for _, u := range list {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%s\n", u.ID, u.Email, u.Username, u.Disabled, u.DateCreated.Format(time.RFC3339))
		}
		return tw.Flush()
	default:
		return errUsage
	}
}
