package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kabsu-me/kabsu-be/config"
	"github.com/kabsu-me/kabsu-be/controllers"
	"github.com/kabsu-me/kabsu-be/db/planetscale"
	"github.com/kabsu-me/kabsu-be/routes"
	"github.com/kabsu-me/kabsu-be/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("error loading configuration", err)
	}

	db, err := planetscale.GetDatabase(cfg)
	if err != nil {
		log.Fatal("received err when attempting to connect to DB", err)
	}
	defer db.Close()

	if err := configureFirebaseCredentials(); err != nil {
		log.Fatal("an error occurred while configuring firebase credentials", err)
	}
	app, err := firebase.NewApp(context.Background(), nil)
	if err != nil {
		log.Fatalf("error initializing firebase: %v\n", err)
	}
	authClient, err := app.Auth(context.Background())
	if err != nil {
		log.Fatal("error initializing auth client", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.FEOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	userBucket, err := services.NewStorageBucket(context.Background(), app, cfg.StorageBucket)
	if err != nil {
		log.Fatal("an error occurred while connecting to the user uploads bucket", err)
	}

	taxonomyController, err := controllers.NewTaxonomyController(context.Background(), db)
	if err != nil {
		log.Fatal("an error occurred while initializing the taxonomy controller", err)
	}

	routes.AddHealthCheckRoutes(&r.RouterGroup)
	routes.AddTaxonomyRoutes(&r.RouterGroup, taxonomyController)
	routes.AddUserRoutes(&r.RouterGroup, db, authClient, userBucket)
	routes.AddPostRoutes(&r.RouterGroup, db, authClient, userBucket)
	routes.AddFollowRoutes(&r.RouterGroup, db, authClient)
	routes.AddChatRoutes(&r.RouterGroup, db, authClient)
	routes.AddNglRoutes(&r.RouterGroup, db, authClient)
	routes.AddProfessorRoutes(&r.RouterGroup, db, authClient)
	routes.AddNotificationRoutes(&r.RouterGroup, db, authClient)
	routes.AddAdminRoutes(&r.RouterGroup, db, authClient, taxonomyController)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("error when attempting to run web server", err)
	}
}

const (
	CredentialsPathEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	CredentialsJsonEnvVar = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	TargetCredentialsFile = "./google-application-credentials.json"
)

func configureFirebaseCredentials() error {
	credentialsPath, hasCredentialsPath := os.LookupEnv(CredentialsPathEnvVar)
	if hasCredentialsPath {
		log.Printf("credentials path detected in env. Expecting credentials to be at %v\n", credentialsPath)
		return nil
	}
	credentialsJson, hasCredentialsJson := os.LookupEnv(CredentialsJsonEnvVar)
	if hasCredentialsJson {
		log.Println("credentials JSON string detected in env.")
		if err := os.WriteFile(TargetCredentialsFile, []byte(credentialsJson), 400); err != nil {
			return fmt.Errorf("error writing credentials to temp file, %w", err)
		}
		if err := os.Setenv(CredentialsPathEnvVar, TargetCredentialsFile); err != nil {
			return fmt.Errorf("error setting %v env var %w", CredentialsPathEnvVar, err)
		}
		return nil
	}
	return fmt.Errorf("must specify either %v (a path)"+
		" or %v (credentials as JSON string)", CredentialsPathEnvVar, CredentialsJsonEnvVar)
}
