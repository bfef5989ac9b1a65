package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/src/core/usecase"
	"inventory/src/core/validation"
	"inventory/src/infra/auth"
	"inventory/src/infra/config"
	"inventory/src/infra/logger"
	"inventory/src/infra/repo/memory"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "cli-secret")
	t.Setenv("APP_JWT_ISSUER", "inventory")
	t.Setenv("APP_LOG_LEVEL", "error")

	out, err := execute(t, "token", "--subject", "alice", "--role", "manager", "--role", "admin")
	require.NoError(t, err)

	svc, err := auth.NewTokenService(config.AuthConfig{JWTSecret: "cli-secret", JWTIssuer: "inventory"})
	require.NoError(t, err)
	p, err := svc.Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Subject)
	assert.ElementsMatch(t, []string{auth.RoleManager, auth.RoleAdmin}, p.Roles)
}

func TestTokenCommandRejectsUnknownRole(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "cli-secret")

	_, err := execute(t, "token", "--role", "owner")
	assert.ErrorContains(t, err, `unknown role "owner"`)
}

func TestSeedCommandMemory(t *testing.T) {
	t.Setenv("APP_STORE_DRIVER", "memory")
	t.Setenv("APP_AUTH_ENABLED", "false")
	t.Setenv("APP_LOG_LEVEL", "error")

	out, err := execute(t, "seed")
	require.NoError(t, err)
	assert.Equal(t, "seeded 3 categories and 6 products\n", out)
}

func TestSeedSkipsExistingCategories(t *testing.T) {
	uc := usecase.NewHandlers(memory.New().Ports(), validation.New(), logger.Components(logger.Discard()))

	categories, products, err := seed(context.Background(), uc)
	require.NoError(t, err)
	assert.Equal(t, 3, categories)
	assert.Equal(t, 6, products)

	categories, products, err = seed(context.Background(), uc)
	require.NoError(t, err)
	assert.Zero(t, categories)
	assert.Zero(t, products)

	low, err := uc.GetLowStockProducts.Handle(context.Background(), usecase.GetLowStockProductsQuery{})
	require.NoError(t, err)
	assert.Len(t, low, 3)
}

func TestMigrateRequiresPostgres(t *testing.T) {
	t.Setenv("APP_STORE_DRIVER", "memory")
	t.Setenv("APP_AUTH_ENABLED", "false")

	_, err := execute(t, "migrate", "status")
	assert.ErrorContains(t, err, "postgres")
}
