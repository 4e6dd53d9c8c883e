package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"z-doc-ai-api/internal/config"
	"z-doc-ai-api/internal/domain/entity"
	"z-doc-ai-api/internal/infrastructure/persistence/postgres"
	"z-doc-ai-api/internal/wire"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting system bootstrap...")

	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. 初始化数据层（仅 PostgreSQL）
	dataLayer, cleanup, err := wire.InitializePostgresOnly(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize data layer: %v", err)
	}
	defer cleanup()

	// 3. 迁移表结构
	if err := postgres.Migrate(dataLayer.PgClient.DB()); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	fmt.Println("Schema migrated.")

	// 4. 创建首个用户
	username := os.Getenv("BOOTSTRAP_USERNAME")
	password := os.Getenv("BOOTSTRAP_PASSWORD")
	if username == "" || password == "" {
		fmt.Println("BOOTSTRAP_USERNAME / BOOTSTRAP_PASSWORD not set, skipping user creation.")
		fmt.Println("Bootstrap completed successfully.")
		return
	}

	exists, err := dataLayer.UserRepo.ExistsByUsername(ctx, username)
	if err != nil {
		log.Fatalf("failed to check user existence: %v", err)
	}

	if !exists {
		fmt.Printf("Creating user: %s...\n", username)
		user := entity.NewUser(username)
		if err := user.SetPassword(password); err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		if err := dataLayer.UserRepo.Create(ctx, user); err != nil {
			log.Fatalf("failed to create user: %v", err)
		}
		fmt.Printf("User created with ID: %s\n", user.ID)
	} else {
		fmt.Printf("User %s already exists.\n", username)
	}

	fmt.Println("Bootstrap completed successfully.")
}
