package main

import (
	"fmt"
	"os"

	"sitewise/app/config"
	"sitewise/app/database"
	"sitewise/app/models"
)

func main() {
	if len(os.Args) < 5 {
		fmt.Println("Usage: add_user <email> <password> <first_name> <last_name> [role]")
		return
	}

	// Initialize database connection
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		return
	}

	user := &models.User{
		Email:     os.Args[1],
		Password:  os.Args[2],
		FirstName: os.Args[3],
		LastName:  os.Args[4],
	}
	role := "admin"
	if len(os.Args) > 5 {
		role = os.Args[5]
	}

	err := database.CreateUser(db, user, role)
	if err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		return
	}

	fmt.Printf("User created successfully: %s %s (%s)\n", user.FirstName, user.LastName, user.Email)
}
