package main

import (
	"fmt"

	"sitewise/app/config"
	"sitewise/app/database"
)

func main() {
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		return
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		return
	}

	fmt.Println("Migrations applied")
}
