package components

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/internal/naming"
	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oas"
	"github.com/erraggy/oasgen/oaserrors"
)

func schemaDecl(typ, loc string) marker.Declaration {
	return marker.Declaration{
		ID:   marker.Identity{Type: typ, Location: loc},
		Kind: marker.KindSchema,
		Factory: marker.SchemaFunc(func() (*oas.Schema, error) {
			return &oas.Schema{Type: "object", Title: typ}, nil
		}),
	}
}

func responseDecl(typ string) marker.Declaration {
	return marker.Declaration{
		ID:   marker.Identity{Type: typ},
		Kind: marker.KindResponse,
		Factory: marker.ResponseFunc(func() (*oas.Response, error) {
			return &oas.Response{Description: typ}, nil
		}),
	}
}

func TestSchemaBuilderDerivesNames(t *testing.T) {
	table, err := NewSchemaBuilder().Build(context.Background(), []marker.Declaration{
		schemaDecl("example.com/app/models.UserSchema", "models/user.go:10"),
		schemaDecl("example.com/app/models.Schema", "models/schema.go:3"),
		schemaDecl(`App\Schemas\OrderSchema`, "order.php:4"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Order", "Schema", "User"}, table.Names())
	assert.Equal(t, marker.KindSchema, table.Kind())

	user, ok := table.Get("User")
	require.True(t, ok)
	assert.Equal(t, "example.com/app/models.UserSchema", user.Title)

	origin, ok := table.Origin("User")
	require.True(t, ok)
	assert.Equal(t, "models/user.go:10", origin.Location)
}

func TestSchemaBuilderNamingStrategy(t *testing.T) {
	b := NewSchemaBuilder(WithNamer(Namer{Strategy: naming.Snake, StripSuffix: false}))
	table, err := b.Build(context.Background(), []marker.Declaration{schemaDecl("models.UserAccountSchema", "")})
	require.NoError(t, err)
	assert.Equal(t, []string{"user_account_schema"}, table.Names())
}

func TestSchemaBuilderDuplicateNames(t *testing.T) {
	_, err := NewSchemaBuilder().Build(context.Background(), []marker.Declaration{
		schemaDecl("example.com/app/billing.Address", "billing/address.go:7"),
		schemaDecl("example.com/app/shipping.Address", "shipping/address.go:12"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrDuplicateComponent))

	var dup *oaserrors.DuplicateComponentError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "schemas", dup.Kind)
	assert.Equal(t, "Address", dup.Name)
	assert.Contains(t, dup.First, "billing/address.go:7")
	assert.Contains(t, dup.Second, "shipping/address.go:12")
}

func TestSchemaBuilderExplicitNameAvoidsCollision(t *testing.T) {
	shipping := schemaDecl("example.com/app/shipping.Address", "")
	shipping.Name = "ShippingAddress"

	table, err := NewSchemaBuilder().Build(context.Background(), []marker.Declaration{
		schemaDecl("example.com/app/billing.Address", ""),
		shipping,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Address", "ShippingAddress"}, table.Names())
}

func TestSchemaBuilderSameIdentityOnce(t *testing.T) {
	d := schemaDecl("models.Pet", "pet.go:1")
	table, err := NewSchemaBuilder().Build(context.Background(), []marker.Declaration{d, d.Clone()})
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestSchemaBuilderIgnoresUsages(t *testing.T) {
	usage := marker.Declaration{ID: marker.Identity{Type: "handlers.Users"}, Kind: marker.KindSchema, Ref: "User"}
	table, err := NewSchemaBuilder().Build(context.Background(), []marker.Declaration{usage})
	require.NoError(t, err)
	assert.Zero(t, table.Len())
	assert.Nil(t, table.Map())
}

func TestSchemaBuilderFactoryErrors(t *testing.T) {
	ctx := context.Background()

	noFactory := schemaDecl("models.Pet", "")
	noFactory.Factory = nil
	_, err := NewSchemaBuilder().Build(ctx, []marker.Declaration{noFactory})
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
	assert.ErrorContains(t, err, "models.Pet")

	wrong := schemaDecl("models.Pet", "")
	wrong.Factory = marker.ResponseFunc(func() (*oas.Response, error) { return &oas.Response{}, nil })
	_, err = NewSchemaBuilder().Build(ctx, []marker.Declaration{wrong})
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
	assert.ErrorContains(t, err, "marker.SchemaFactory")

	boom := errors.New("boom")
	failing := schemaDecl("models.Pet", "")
	failing.Factory = marker.SchemaFunc(func() (*oas.Schema, error) { return nil, boom })
	_, err = NewSchemaBuilder().Build(ctx, []marker.Declaration{failing})
	assert.ErrorIs(t, err, boom)

	nilBody := schemaDecl("models.Pet", "")
	nilBody.Factory = marker.SchemaFunc(func() (*oas.Schema, error) { return nil, nil })
	_, err = NewSchemaBuilder().Build(ctx, []marker.Declaration{nilBody})
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}

func TestSchemaBuilderManyDeclarations(t *testing.T) {
	var decls []marker.Declaration
	for i := range 100 {
		decls = append(decls, schemaDecl(fmt.Sprintf("models.Model%03d", i), ""))
	}
	table, err := NewSchemaBuilder().Build(context.Background(), decls)
	require.NoError(t, err)
	assert.Equal(t, 100, table.Len())
	assert.Equal(t, "Model000", table.Names()[0])
}

func TestBuilderAssemblesComponents(t *testing.T) {
	decls := map[marker.Kind][]marker.Declaration{
		marker.KindSchema:   {schemaDecl("models.UserSchema", "")},
		marker.KindResponse: {responseDecl("responses.UserResponse")},
		marker.KindTag:      {{ID: marker.Identity{Type: "tags.Users"}, Kind: marker.KindTag}},
	}
	tables, err := NewBuilder().Build(context.Background(), decls)
	require.NoError(t, err)

	c := tables.Components()
	require.NotNil(t, c)
	assert.Contains(t, c.Schemas, "User")
	assert.Contains(t, c.Responses, "User", "names may repeat across kinds")
	assert.Nil(t, c.RequestBodies)
	assert.Nil(t, c.Callbacks)
	assert.Nil(t, c.SecuritySchemes)

	assert.True(t, tables.Has(marker.KindResponse, "User"))
	assert.False(t, tables.Has(marker.KindRequestBody, "User"))
	assert.False(t, tables.Has(marker.KindTag, "Users"))
	assert.Equal(t, []string{"User"}, tables.Names(marker.KindSchema))
}

func TestBuilderEmpty(t *testing.T) {
	tables, err := NewBuilder().Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, tables.Components())
	assert.Zero(t, tables.Schemas.Len())
}

func TestBuilderPropagatesDuplicate(t *testing.T) {
	decls := map[marker.Kind][]marker.Declaration{
		marker.KindResponse: {responseDecl("a.NotFound"), responseDecl("b.NotFound")},
	}
	_, err := NewBuilder().Build(context.Background(), decls)
	assert.ErrorIs(t, err, oaserrors.ErrDuplicateComponent)
}

type fixedSchemas map[string]*oas.Schema

func (f fixedSchemas) Build(context.Context, []marker.Declaration) (*Table[oas.Schema], error) {
	return NewTable(marker.KindSchema, f), nil
}

func TestBuilderInjectedKindBuilder(t *testing.T) {
	b := NewBuilder(WithSchemaBuilder(fixedSchemas{"Fixed": {Type: "string"}}))
	tables, err := b.Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fixed"}, tables.Schemas.Names())
}

func TestIndex(t *testing.T) {
	paging := marker.Declaration{ID: marker.Identity{Type: "params.PagingParameters"}, Kind: marker.KindParameters}
	idx, err := NewIndex(marker.KindParameters, []marker.Declaration{paging}, DefaultNamer())
	require.NoError(t, err)
	assert.Equal(t, []string{"Paging"}, idx.Names())

	d, ok := idx.Lookup("Paging")
	require.True(t, ok)
	assert.Equal(t, "params.PagingParameters", d.ID.Type)

	_, ok = idx.Lookup("Missing")
	assert.False(t, ok)

	var nilIdx *Index
	_, ok = nilIdx.Lookup("Paging")
	assert.False(t, ok)

	other := paging
	other.ID.Type = "other.Paging"
	_, err = NewIndex(marker.KindParameters, []marker.Declaration{paging, other}, DefaultNamer())
	var dup *oaserrors.DuplicateComponentError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "parameters", dup.Kind)
}
