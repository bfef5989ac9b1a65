package validation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/src/core/domain"
)

type patchCmd struct {
	ID    uuid.UUID                        `json:"id" validate:"required"`
	Name  domain.Optional[string]          `json:"name" validate:"omitempty,notblank,max=5"`
	Price domain.Optional[decimal.Decimal] `json:"price" validate:"omitempty,gte=0"`
	Code  domain.Optional[string]          `json:"code" validate:"omitempty,len=3,alpha"`
}

func (c patchCmd) IsEmpty() bool {
	return !c.Name.IsSet() && !c.Price.IsSet() && !c.Code.IsSet()
}

func TestValidate_Optional(t *testing.T) {
	v := New()
	id := uuid.New()

	cases := []struct {
		name  string
		cmd   patchCmd
		field string
	}{
		{"valid", patchCmd{ID: id, Name: domain.Some("abc")}, ""},
		{"nil id", patchCmd{Name: domain.Some("abc")}, "id"},
		{"blank name", patchCmd{ID: id, Name: domain.Some("   ")}, "name"},
		{"long name", patchCmd{ID: id, Name: domain.Some("abcdef")}, "name"},
		{"negative price", patchCmd{ID: id, Price: domain.Some(decimal.NewFromFloat(-0.01))}, "price"},
		{"zero price", patchCmd{ID: id, Price: domain.Some(decimal.Zero)}, ""},
		{"bad code", patchCmd{ID: id, Code: domain.Some("U1D")}, "code"},
		{"good code", patchCmd{ID: id, Code: domain.Some("usd")}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.cmd)
			if tc.field == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, domain.IsValidationError(err))
			assert.Equal(t, tc.field, domain.FieldOf(err))
		})
	}
}

func TestValidate_EmptyPatch(t *testing.T) {
	err := New().Validate(patchCmd{ID: uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one field")
}

func TestValidate_Messages(t *testing.T) {
	err := New().Validate(patchCmd{ID: uuid.New(), Name: domain.Some("toolong")})
	assert.Equal(t, "name cannot exceed 5 characters", domain.MessageOf(err))
}
