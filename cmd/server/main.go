package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"library-management/pkg/catalog"
	"library-management/pkg/circulation"
	"library-management/pkg/database"
	"library-management/pkg/models"
	"library-management/pkg/notify"
)

var (
	db         *gorm.DB
	svc        *circulation.Service
	books      *catalog.BookCatalog
	users      *catalog.UserDirectory
	dispatcher *notify.Dispatcher
)

func main() {
	log.Println("Starting library circulation service...")

	db = database.InitDB()
	svc = circulation.NewService(db)
	books = catalog.NewBookCatalog(db)
	users = catalog.NewUserDirectory(db)

	dispatcher = notify.NewDispatcher(db, getEnv("NOTIFY_WEBHOOK_URL", ""))
	dispatcher.Start()
	defer dispatcher.Stop()

	if getEnv("SEED_DATA", "false") == "true" {
		seedTestData()
	}

	server := gin.Default()
	registerRoutes(server)

	port := getEnv("PORT", "8080")
	log.Printf("Library circulation service starting on :%s", port)
	if err := server.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func registerRoutes(server *gin.Engine) {
	server.POST("/api/v1/users", createUser)
	server.GET("/api/v1/users/:userUid", getUser)

	server.POST("/api/v1/books", createBook)
	server.GET("/api/v1/books", getBooks)
	server.GET("/api/v1/books/:bookUid", getBook)
	server.DELETE("/api/v1/books/:bookUid", deleteBook)
	server.GET("/api/v1/books/:bookUid/available", getBookAvailability)

	server.POST("/api/v1/borrows", createBorrow)
	server.POST("/api/v1/borrows/:borrowUid/return", returnBorrow)
	server.GET("/api/v1/borrows", getBorrows)
	server.GET("/api/v1/borrows/:borrowUid", getBorrow)
	server.GET("/api/v1/borrows/user/:userUid", getBorrowsByUser)
	server.GET("/api/v1/borrows/book/:bookUid", getBorrowsByBook)

	server.POST("/api/v1/reservations", createReservation)
	server.POST("/api/v1/reservations/:reservationUid/confirm", confirmReservation)
	server.DELETE("/api/v1/reservations/:reservationUid", cancelReservation)
	server.GET("/api/v1/reservations", getReservations)
	server.GET("/api/v1/reservations/:reservationUid", getReservation)
	server.GET("/api/v1/reservations/user/:userUid", getReservationsByUser)
	server.GET("/api/v1/reservations/book/:bookUid", getReservationsByBook)

	server.POST("/api/v1/fines", createFine)
	server.POST("/api/v1/fines/:fineUid/pay", payFine)
	server.DELETE("/api/v1/fines/:fineUid", deleteFine)
	server.GET("/api/v1/fines", getFines)
	server.GET("/api/v1/fines/preview", previewFine)
	server.GET("/api/v1/fines/:fineUid", getFine)
	server.GET("/api/v1/fines/borrow/:borrowUid", getFinesByBorrow)

	server.GET("/manage/health", healthCheck)
}

func seedTestData() {
	seedUsers := []struct {
		username string
		email    string
	}{
		{"alice", "alice@example.com"},
		{"bob", "bob@example.com"},
	}
	for _, u := range seedUsers {
		var existing models.User
		if err := db.Where("username = ?", u.username).First(&existing).Error; err != nil {
			if _, err := users.RegisterUser(u.username, u.email); err != nil {
				log.Printf("Failed to seed user %s: %v", u.username, err)
			}
		}
	}

	seedBooks := []struct {
		title    string
		author   string
		isbn     string
		category string
	}{
		{"The Go Programming Language", "Alan A. A. Donovan", "9780134190440", "Programming"},
		{"Designing Data-Intensive Applications", "Martin Kleppmann", "9781449373320", "Programming"},
		{"The Name of the Wind", "Patrick Rothfuss", "9780756404741", "Fantasy"},
	}
	for _, b := range seedBooks {
		var existing models.Book
		if err := db.Where("isbn = ?", b.isbn).First(&existing).Error; err != nil {
			if _, err := books.CreateBook(b.title, b.author, b.isbn, b.category); err != nil {
				log.Printf("Failed to seed book %s: %v", b.title, err)
			}
		}
	}
	log.Println("Test data seeded")
}

func healthCheck(ctx *gin.Context) {
	sqlDB, err := db.DB()
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database connection failed",
			"error":   err.Error(),
		})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database ping failed",
			"error":   err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status": "UP",
	})
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
