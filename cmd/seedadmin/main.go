// seedadmin creates or promotes an admin account. Intended for initial
// deployment and local development:
//
//	go run ./cmd/seedadmin -email ops@example.com -password changeme8 -name "Ops"
package main

import (
	"encoding/json"
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ridebook/internal/config"
	"ridebook/internal/models"
)

func main() {
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required, min 8 chars)")
	name := flag.String("name", "Admin", "display name")
	role := flag.String("role", "superadmin", "admin role: superadmin, manager or support")
	flag.Parse()

	if *email == "" || len(*password) < 8 {
		log.Fatal("usage: seedadmin -email <email> -password <min 8 chars> [-name ...] [-role ...]")
	}
	switch *role {
	case "superadmin", "manager", "support":
	default:
		log.Fatalf("invalid role %q", *role)
	}

	config.InitDB()
	db := config.GetDB()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("could not hash password: %v", err)
	}

	var user models.User
	err = db.Where("email = ?", *email).First(&user).Error
	switch err {
	case nil:
		user.Role = "admin"
		user.Password = string(hash)
		if err := db.Save(&user).Error; err != nil {
			log.Fatalf("could not promote user: %v", err)
		}
		log.Printf("promoted existing user %s to admin", *email)
	case gorm.ErrRecordNotFound:
		user = models.User{Name: *name, Email: *email, Password: string(hash), Role: "admin"}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("could not create user: %v", err)
		}
		log.Printf("created admin user %s", *email)
	default:
		log.Fatalf("database error: %v", err)
	}

	perms, _ := json.Marshal([]string{"*"})
	admin := models.AdminUser{UserID: user.ID, Role: *role, Permissions: perms}
	var existing models.AdminUser
	if err := db.Where("user_id = ?", user.ID).First(&existing).Error; err == nil {
		existing.Role = *role
		existing.Permissions = perms
		if err := db.Save(&existing).Error; err != nil {
			log.Fatalf("could not update admin record: %v", err)
		}
	} else if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("could not create admin record: %v", err)
	}

	log.Println("done")
}
