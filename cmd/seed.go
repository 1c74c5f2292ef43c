package cmd

import (
	"context"
	"time"

	"placehub/internal/config"
	"placehub/internal/domain/user"
	"placehub/internal/infrastructure/cache"
	"placehub/internal/infrastructure/database"
	"placehub/internal/infrastructure/repository"
	serviceInterfaces "placehub/internal/interfaces/service"
	"placehub/internal/service"
	"placehub/pkg/logger"

	"github.com/spf13/cobra"
)

var seedDemo bool

// seedCmd provisions the placement officer account, which is not
// self-registerable, and optionally a set of demo records.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Provision the admin account and optional demo data",
	Long: `Create the placement officer account if it does not exist yet.
With --demo, also create a demo student with a complete profile and one
open drive, for trying the API locally.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSeed()
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().BoolVar(&seedDemo, "demo", false, "Also create demo student and drive records")
}

func runSeed() {
	cfg := config.Get()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.Username,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)

	admin, err := userRepo.GetByUsername(ctx, "admin")
	if err != nil {
		logger.Fatal("Failed to look up admin account: %v", err)
	}
	if admin == nil {
		account, err := user.NewUser("admin", "placement@college.example", "000000000000", "admin123")
		if err != nil {
			logger.Fatal("Failed to hash admin password: %v", err)
		}
		account.Role = user.RoleAdmin
		if err := userRepo.Create(ctx, account); err != nil {
			logger.Fatal("Failed to create admin account: %v", err)
		}
		logger.Info("Created admin account (username admin)")
	} else {
		logger.Info("Admin account already present, skipping")
	}

	if !seedDemo {
		return
	}

	profileRepo := repository.NewProfileRepository(db)
	driveRepo := repository.NewDriveRepository(db)
	userService := service.NewUserService(userRepo)
	driveService := service.NewDriveService(driveRepo, nil)
	profileService := service.NewProfileService(profileRepo, cache.NewMemoryCache(), cfg.Placement.ResumeHosts)

	student, err := userService.Register(ctx, &user.RegisterRequest{
		Username:       "student",
		Email:          "student@college.example",
		RegisterNumber: "211521104001",
		Password:       "student123",
	})
	if err != nil {
		logger.Warn("Demo student not created: %v", err)
	} else {
		if _, err := profileService.SaveProfile(ctx, &serviceInterfaces.SaveProfileRequest{
			StudentID:      student.ID,
			Year:           "III",
			RegisterNumber: "211521104001",
			RollNumber:     "21CS001",
			Department:     "CSE",
			CGPA:           8.2,
			ResumeLink:     "https://drive.google.com/file/d/demo",
			Skills:         "Go, SQL, React",
			Visibility:     "public",
		}); err != nil {
			logger.Warn("Demo profile not saved: %v", err)
		}
	}

	if _, err := driveService.PostDrive(ctx, &serviceInterfaces.PostDriveRequest{
		Title:               "Acme Software Campus Drive",
		Description:         "Graduate engineer roles across backend and data teams.",
		RegistrationLink:    "https://careers.acme.example/campus",
		Deadline:            time.Now().Add(21 * 24 * time.Hour).Format(time.RFC3339),
		EligibleYears:       []string{"III", "IV"},
		EligibleDepartments: []string{"CSE", "IT", "ECE"},
		MinCGPA:             7.0,
	}); err != nil {
		logger.Warn("Demo drive not created: %v", err)
	}

	logger.Info("Seeding finished")
}
