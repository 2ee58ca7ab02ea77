// Package main provides admin management utilities for Blogicum.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"blogicum/internal/config"
	"blogicum/internal/database"
	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/service"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/admin promote <username>   - Grant admin access")
	fmt.Println("  go run ./cmd/admin demote <username>    - Revoke admin access")
	fmt.Println("  go run ./cmd/admin list-admins          - List all admins")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	admins := service.NewAdminService(
		repository.NewUserRepository(db),
		repository.NewPostRepository(db),
		repository.NewCommentRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewLocationRepository(db),
	)
	ctx := context.Background()

	switch command := os.Args[1]; command {
	case "promote", "demote":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		user, err := admins.SetAdmin(ctx, os.Args[2], command == "promote")
		if err != nil {
			log.Fatalf("Failed to %s %s: %v", command, os.Args[2], err)
		}
		if user.IsAdmin {
			fmt.Printf("%s (ID: %d) is now an admin\n", user.Username, user.ID)
		} else {
			fmt.Printf("%s (ID: %d) is no longer an admin\n", user.Username, user.ID)
		}

	case "list-admins":
		listAdmins(ctx, admins)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		usage()
		os.Exit(1)
	}
}

func listAdmins(ctx context.Context, admins *service.AdminService) {
	users, err := admins.ListAdmins(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch admins: %v", err)
	}
	if len(users) == 0 {
		fmt.Println("No admins found in the system")
		return
	}

	fmt.Println("Current admins:")
	for _, u := range users {
		printUser(u)
	}
}

func printUser(u *models.User) {
	fmt.Printf("ID: %d | Username: %s | Email: %s\n", u.ID, u.Username, u.Email)
}
