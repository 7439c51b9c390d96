package db

import (
	"fmt"

	"github.com/KromaEnergia/api-vendas/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDataBase abre a conexão conforme o driver configurado.
// Para postgres, credenciais vazias são buscadas no AWS Secrets Manager (DB_SECRET_ID).
func ConnectDataBase(cfg config.DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	case "postgres":
		username, password, err := retrieveCredentials(cfg)
		if err != nil {
			return nil, err
		}
		dialector = postgres.Open(postgresDSN(cfg, username, password))
	default:
		return nil, fmt.Errorf("driver de banco não suportado: %s", cfg.Driver)
	}

	return gorm.Open(dialector, gormConfig())
}

func postgresDSN(cfg config.DBConfig, username, password string) string {
	var sslMode string
	if cfg.SSLDisable {
		sslMode = " sslmode=disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
		cfg.Host, username, password, cfg.Name, cfg.Port, sslMode)
}

// As regras de integridade (vendedor com tabelas, tabela com vendas) ficam na
// aplicação, por isso as FKs não são criadas na migração.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Error),
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}
