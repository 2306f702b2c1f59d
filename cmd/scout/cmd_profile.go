package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/service"
	"github.com/startupscout/showcase/pkg/logger"
)

var (
	profileEdit    domain.ProfileUpdate
	avatarFromFile string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Edit your profile",
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change name or username",
	RunE:  runProfileUpdate,
}

var profileAvatarCmd = &cobra.Command{
	Use:   "avatar [url]",
	Short: "Set the avatar from a URL or, with --file, from an uploaded image",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProfileAvatar,
}

var profileTelegramCmd = &cobra.Command{
	Use:   "link-telegram key=value...",
	Short: "Link a Telegram account from the login widget payload",
	Long: `Link a Telegram account. Pass every field of the Telegram login widget
payload as key=value, for example:

  scout profile link-telegram id=42 first_name=Ana auth_date=1700000000 hash=...`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProfileTelegram,
}

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an image and print its URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

// withProfile runs fn with a profile service bound to the current session.
func withProfile(cmd *cobra.Command, fn func(*service.ProfileService) error) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	profile := service.NewProfileService(a.client, a.sessions, logger.For("profile"))
	defer profile.Close()
	return fn(profile)
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	return withProfile(cmd, func(p *service.ProfileService) error {
		user, err := p.UpdateProfile(cmd.Context(), profileEdit)
		if err != nil {
			return err
		}
		return printUser(cmd.OutOrStdout(), user)
	})
}

func runProfileAvatar(cmd *cobra.Command, args []string) error {
	if (avatarFromFile == "") == (len(args) == 0) {
		return fmt.Errorf("pass either an avatar URL or --file")
	}
	return withProfile(cmd, func(p *service.ProfileService) error {
		url := ""
		if len(args) == 1 {
			url = args[0]
		} else {
			uploaded, err := uploadFile(cmd, p, avatarFromFile)
			if err != nil {
				return err
			}
			url = uploaded
		}
		avatar, err := p.UpdateAvatar(cmd.Context(), url)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Avatar set to %s\n", avatar)
		return nil
	})
}

func runProfileTelegram(cmd *cobra.Command, args []string) error {
	params := make(map[string]string, len(args))
	for _, kv := range args {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return fmt.Errorf("expected key=value, got %q", kv)
		}
		params[k] = v
	}
	return withProfile(cmd, func(p *service.ProfileService) error {
		if err := p.LinkTelegram(cmd.Context(), params); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Telegram account linked")
		return nil
	})
}

func runUpload(cmd *cobra.Command, args []string) error {
	return withProfile(cmd, func(p *service.ProfileService) error {
		url, err := uploadFile(cmd, p, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), url)
		return nil
	})
}

func uploadFile(cmd *cobra.Command, p *service.ProfileService, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", domain.ValidationFailed("image", err.Error())
	}
	defer f.Close()
	return p.UploadImage(cmd.Context(), path, f)
}

func init() {
	f := profileUpdateCmd.Flags()
	f.StringVar(&profileEdit.FirstName, "first-name", "", "first name")
	f.StringVar(&profileEdit.LastName, "last-name", "", "last name")
	f.StringVar(&profileEdit.Username, "username", "", "username")

	profileAvatarCmd.Flags().StringVar(&avatarFromFile, "file", "", "upload this image and use it as avatar")

	profileCmd.AddCommand(profileUpdateCmd, profileAvatarCmd, profileTelegramCmd)
	rootCmd.AddCommand(profileCmd, uploadCmd)
}
