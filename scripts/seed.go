package main

import (
	"log"

	"lms/config"
	"lms/database"
	"lms/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds the role/permission catalog and a bootstrap admin account.
// Safe to re-run: existing rows are left alone.

var resourceTypes = []string{
	"courses",
	"batches",
	"phases",
	"weeks",
	"week_components",
	"class_topics",
	"sessions",
	"enrollments",
	"roles",
}

var actions = []string{
	models.ActionCreate,
	models.ActionRead,
	models.ActionUpdate,
	models.ActionDelete,
	models.ActionManage,
}

// role name -> granted actions per resource type
var roleGrants = map[string]map[string][]string{
	"STUDENT": {
		"courses":     {models.ActionRead},
		"enrollments": {models.ActionCreate, models.ActionRead, models.ActionUpdate},
	},
	"INSTRUCTOR": {
		"courses":         {models.ActionCreate, models.ActionRead, models.ActionUpdate},
		"phases":          {models.ActionCreate, models.ActionRead, models.ActionUpdate},
		"weeks":           {models.ActionCreate, models.ActionRead, models.ActionUpdate},
		"week_components": {models.ActionCreate, models.ActionRead, models.ActionUpdate},
		"class_topics":    {models.ActionCreate, models.ActionRead, models.ActionUpdate},
		"sessions":        {models.ActionCreate, models.ActionRead, models.ActionUpdate},
	},
	"ADMIN": allGrants(),
}

var roleLevels = map[string]int{
	"STUDENT":    10,
	"INSTRUCTOR": 50,
	"ADMIN":      100,
}

func allGrants() map[string][]string {
	grants := make(map[string][]string, len(resourceTypes))
	for _, resource := range resourceTypes {
		grants[resource] = actions
	}
	return grants
}

func main() {
	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	seedPermissions(db)
	seedRoles(db)
	seedAdminUser(db)

	log.Println("Seeding completed.")
}

func seedPermissions(db *gorm.DB) {
	for _, resource := range resourceTypes {
		for _, action := range actions {
			code := resource + ":" + action
			var existing models.Permission
			if err := db.Where("code = ?", code).First(&existing).Error; err == nil {
				continue
			}
			permission := models.Permission{
				Code:         code,
				ResourceType: resource,
				Action:       action,
			}
			if err := db.Create(&permission).Error; err != nil {
				log.Fatalf("Failed to seed permission %s: %v", code, err)
			}
		}
	}
	log.Println("Permission catalog seeded.")
}

func seedRoles(db *gorm.DB) {
	for name, grants := range roleGrants {
		var role models.Role
		if err := db.Where("name = ?", name).First(&role).Error; err != nil {
			role = models.Role{
				Name:            name,
				PermissionLevel: roleLevels[name],
				IsSystemRole:    true,
			}
			if err := db.Create(&role).Error; err != nil {
				log.Fatalf("Failed to seed role %s: %v", name, err)
			}
		}

		for resource, grantedActions := range grants {
			for _, action := range grantedActions {
				var permission models.Permission
				if err := db.Where("code = ?", resource+":"+action).First(&permission).Error; err != nil {
					log.Fatalf("Permission %s:%s missing while granting to %s", resource, action, name)
				}

				var grant models.RolePermission
				if err := db.Where("role_id = ? AND permission_id = ?", role.ID, permission.ID).First(&grant).Error; err == nil {
					continue
				}
				grant = models.RolePermission{
					RoleID:       role.ID,
					PermissionID: permission.ID,
					IsGranted:    true,
				}
				if err := db.Create(&grant).Error; err != nil {
					log.Fatalf("Failed to grant %s to %s: %v", permission.Code, name, err)
				}
			}
		}
	}
	log.Println("Roles and grants seeded.")
}

func seedAdminUser(db *gorm.DB) {
	var existing models.User
	if err := db.Where("email = ?", "admin@lms.local").First(&existing).Error; err == nil {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("changeMe!"), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    "admin@lms.local",
		Password: string(hashed),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	var adminRole models.Role
	if err := db.Where("name = ?", "ADMIN").First(&adminRole).Error; err != nil {
		log.Fatalf("ADMIN role missing: %v", err)
	}
	userRole := models.UserRole{
		UserID:   admin.ID,
		RoleID:   adminRole.ID,
		IsActive: true,
	}
	if err := db.Create(&userRole).Error; err != nil {
		log.Fatalf("Failed to assign ADMIN role: %v", err)
	}

	log.Println("Admin user seeded (admin@lms.local / changeMe!).")
}
