package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/langkah-ekspor/exporo/internal/chat"
	"github.com/langkah-ekspor/exporo/internal/report"
)

var (
	chatUserID   string
	chatEmail    string
	chatPassword string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat session on the terminal",
	Long:  "Starts a REPL session, anonymous or logged in via --email/--password. Type /profile to inspect the accumulated profile, /save to persist it, /reset to start over, /quit to exit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		userID := chatUserID
		if chatEmail != "" {
			u, err := env.Store.Authenticate(ctx, chatEmail, chatPassword)
			if err != nil {
				return err
			}
			userID = u.ID
			fmt.Printf("Masuk sebagai %s %s.\n", u.FirstName, u.LastName)
		}

		profile, err := env.Store.LoadProfile(ctx, userID)
		if err != nil {
			return err
		}
		sess := chat.Resume(userID, profile)

		fmt.Println("Exporo - SME Export Assistant")
		fmt.Println("Ketik pesan Anda, atau /profile, /save, /reset, /quit.")
		fmt.Println()

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			switch line {
			case "/quit", "/exit":
				return nil
			case "/profile":
				doc, err := report.JSONDocument(sess.Profile)
				if err != nil {
					return err
				}
				fmt.Println(string(doc))
				continue
			case "/save":
				if err := env.Store.SaveProfile(ctx, userID, sess.Profile); err != nil {
					fmt.Printf("Gagal menyimpan profil: %v\n", err)
				} else {
					fmt.Println("Profil tersimpan.")
				}
				continue
			case "/reset":
				sess.Reset()
				if err := env.Store.SaveProfile(ctx, userID, sess.Profile); err != nil {
					fmt.Printf("Gagal menyimpan profil: %v\n", err)
				}
				fmt.Println("Percakapan dan profil direset.")
				continue
			}

			reply, err := env.Engine.ProcessTurn(ctx, sess, line)
			if err != nil {
				return err
			}
			fmt.Println()
			fmt.Println(reply)
			fmt.Println()
		}
		return scanner.Err()
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatUserID, "user", "local", "user id for anonymous sessions")
	chatCmd.Flags().StringVar(&chatEmail, "email", "", "log in with this account email")
	chatCmd.Flags().StringVar(&chatPassword, "password", "", "account password")
	rootCmd.AddCommand(chatCmd)
}
