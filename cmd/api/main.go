package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"github.com/Hari-385/bookbridge-ai-connect/internal/adapter/api"
	"github.com/Hari-385/bookbridge-ai-connect/internal/adapter/api/handler"
	apimiddleware "github.com/Hari-385/bookbridge-ai-connect/internal/adapter/api/middleware"
	"github.com/Hari-385/bookbridge-ai-connect/internal/adapter/api/router"
	"github.com/Hari-385/bookbridge-ai-connect/internal/adapter/repository"
	"github.com/Hari-385/bookbridge-ai-connect/internal/infrastructure/firebase"
	"github.com/Hari-385/bookbridge-ai-connect/internal/infrastructure/storage"
	"github.com/Hari-385/bookbridge-ai-connect/internal/infrastructure/websocket"
	"github.com/Hari-385/bookbridge-ai-connect/internal/usecase"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	serviceAccountPath := ""

	// Service account from environment variable (production) or file (local)
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./serviceAccountKey.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(
		ctx,
		cfg.BookImagesBucket,
		cfg.AvatarsBucket,
		serviceAccountPath,
	)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	profileRepo := repository.NewFirestoreProfileRepository(firestoreClient)
	bookRepo := repository.NewFirestoreBookRepository(firestoreClient)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(profileRepo, firebaseAuthClient)
	profileUseCase := usecase.NewProfileUseCase(profileRepo)
	bookUseCase := usecase.NewBookUseCase(bookRepo)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, bookRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, bookRepo, profileRepo, wsManager)

	handler.Setup(authUseCase, profileUseCase, bookUseCase, orderUseCase, chatUseCase)
	handler.SetupFileHandler(storageClient)
	handler.SetupHealthHandler(firebaseAuthClient)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	eventHandler := websocket.NewEventHandler(wsManager, chatUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager, eventHandler, authClient)

	router.Setup(e, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
