package main

import (
	"log"
	"os"

	"github.com/swachhapp/swachh/core"
	"github.com/swachhapp/swachh/core/user"
	"github.com/swachhapp/swachh/storage/database"
)

func main() {
	db, err := database.Open()
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	repo := database.NewUserRepository(db)
	cli := &commandLine{
		db:      db,
		usrRepo: repo,
		usrSvc:  user.NewService(repo, nil),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			log.Fatalf("%s: %v", core.Conf.AppName, err)
		}
		os.Exit(2)
	}
}
