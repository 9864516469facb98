package main

import (
	"log"
	"os"

	"lms_backend/internals/configs"
	database "lms_backend/internals/databases"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	configs.LoadEnv()

	database.ConnectDB()
	defer database.Close()
	errAndDie(database.Ping())

	cli := commandLine{db: database.DB, out: os.Stdout}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		database.Close()
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
