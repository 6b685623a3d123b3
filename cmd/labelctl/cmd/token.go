package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"labelprint/internal/domain/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an operator bearer token",
	Long: `token signs a JWT with LABELPRINT_AUTH_JWT_SECRET. The API attributes
print jobs and configurations to the token's name.`,
	Example: `  LABELPRINT_AUTH_JWT_SECRET=... labelctl token --subject line-3 --name "Line 3" --role printer`,
	Args:    cobra.NoArgs,
	RunE:    runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().String("subject", "", "operator id")
	tokenCmd.Flags().String("name", "", "operator display name")
	tokenCmd.Flags().StringSlice("role", nil, "role, repeatable")
	tokenCmd.Flags().Duration("ttl", 0, "token lifetime (defaults to auth.token_ttl)")
	_ = tokenCmd.MarkFlagRequired("subject")
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	subject, _ := cmd.Flags().GetString("subject")
	name, _ := cmd.Flags().GetString("name")
	roles, _ := cmd.Flags().GetStringSlice("role")
	ttl, _ := cmd.Flags().GetDuration("ttl")
	if ttl <= 0 {
		ttl = cfg.Auth.TokenTTL
	}

	svc := auth.NewJWTService(auth.JWTConfig{
		Secret:   cfg.Auth.JWTSecret,
		Issuer:   cfg.Auth.Issuer,
		TokenTTL: ttl,
	})
	token, expires, err := svc.Issue(subject, name, roles)
	if err != nil {
		return fmt.Errorf("issue token (is LABELPRINT_AUTH_JWT_SECRET set?): %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expires.UTC().Format(time.RFC3339))
	return nil
}
