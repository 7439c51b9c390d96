package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/KromaEnergia/api-vendas/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets struct {
	valor  *string
	err    error
	pedido string
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.pedido = aws.ToString(in.SecretId)
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: f.valor}, nil
}

func TestCredentialsFromSecret(t *testing.T) {
	f := &fakeSecrets{valor: aws.String(`{"username":"vendas","password":"p@ss"}`)}

	u, p, err := credentialsFromSecret(context.Background(), f, "prod/vendas")
	require.NoError(t, err)
	assert.Equal(t, "vendas", u)
	assert.Equal(t, "p@ss", p)
	assert.Equal(t, "prod/vendas", f.pedido)
}

func TestCredentialsFromSecret_Erros(t *testing.T) {
	_, _, err := credentialsFromSecret(context.Background(), &fakeSecrets{err: errors.New("negado")}, "x")
	assert.ErrorContains(t, err, "negado")

	_, _, err = credentialsFromSecret(context.Background(), &fakeSecrets{}, "x")
	assert.Error(t, err)

	_, _, err = credentialsFromSecret(context.Background(), &fakeSecrets{valor: aws.String("{")}, "x")
	assert.Error(t, err)
}

func TestRetrieveCredentials_Ambiente(t *testing.T) {
	u, p, err := retrieveCredentials(config.DBConfig{Username: "a", Password: "b"})
	require.NoError(t, err)
	assert.Equal(t, "a", u)
	assert.Equal(t, "b", p)

	_, _, err = retrieveCredentials(config.DBConfig{})
	assert.Error(t, err)
}

func TestRetrieveCredentials_Segredo(t *testing.T) {
	original := newSecretsClient
	t.Cleanup(func() { newSecretsClient = original })
	newSecretsClient = func(context.Context) (secretGetter, error) {
		return &fakeSecrets{valor: aws.String(`{"username":"u","password":"s"}`)}, nil
	}

	u, p, err := retrieveCredentials(config.DBConfig{SecretID: "prod/vendas"})
	require.NoError(t, err)
	assert.Equal(t, "u", u)
	assert.Equal(t, "s", p)
}

func TestPostgresDSN(t *testing.T) {
	cfg := config.DBConfig{Host: "db", Port: 5433, Name: "vendas", SSLDisable: true}
	assert.Equal(t, "host=db user=u password=p dbname=vendas port=5433 sslmode=disable", postgresDSN(cfg, "u", "p"))
}

func TestConnectDataBase_SQLite(t *testing.T) {
	cfg := config.DBConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "app.db")}

	conn, err := ConnectDataBase(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))

	assert.True(t, conn.Migrator().HasTable("vendedor"))
	assert.True(t, conn.Migrator().HasTable("vendedor_comissao"))
	assert.True(t, conn.Migrator().HasTable("venda"))
}
