package main

import (
	"github.com/adsretail/billdesk/internal/config"
	"github.com/adsretail/billdesk/internal/observability"
	"github.com/adsretail/billdesk/internal/server"
	"github.com/adsretail/billdesk/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		server.Module,
	)
	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
