package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/talkincode/mlregistry/config"
	"github.com/talkincode/mlregistry/internal/app"
	"go.uber.org/zap"
)

var (
	h        = flag.Bool("h", false, "help usage")
	conffile = flag.String("c", "", "config yaml file")
	initdb   = flag.Bool("initdb", false, "run database migration and exit")
)

func main() {
	flag.Parse()
	if *h {
		fmt.Fprint(os.Stderr, "mlregistry usage:\nmlregistry -h\nmlregistry -c config.yml -initdb\n")
		flag.PrintDefaults()
		return
	}

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		if err := application.MigrateDB(); err != nil {
			zap.L().Fatal("migration failed", zap.Error(err))
		}
		return
	}

	zap.L().Info("mlregistry ready; catalog services are consumed in-process, see internal/catalog")
}
