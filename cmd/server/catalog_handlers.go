package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func createUser(c *gin.Context) {
	var request struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := users.RegisterUser(request.Username, request.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userResponse(user))
}

func getUser(c *gin.Context) {
	user, err := users.FindUser(c.Param("userUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse(user))
}

func createBook(c *gin.Context) {
	var request struct {
		Title    string `json:"title" binding:"required"`
		Author   string `json:"author" binding:"required"`
		Isbn     string `json:"isbn" binding:"required,len=13,numeric"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	book, err := books.CreateBook(request.Title, request.Author, request.Isbn, request.Category)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookResponse(book))
}

func getBooks(c *gin.Context) {
	// Lookup by ISBN when given, otherwise the full catalog.
	if isbn := c.Query("isbn"); isbn != "" {
		book, err := books.FindBookByIsbn(isbn)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, []gin.H{bookResponse(book)})
		return
	}

	all, err := books.AllBooks()
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, len(all))
	for i := range all {
		items[i] = bookResponse(&all[i])
	}
	c.JSON(http.StatusOK, items)
}

func getBook(c *gin.Context) {
	book, err := books.FindBook(c.Param("bookUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookResponse(book))
}

func deleteBook(c *gin.Context) {
	if err := books.DeleteBook(c.Param("bookUid")); err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusNoContent, "application/json", nil)
}

func getBookAvailability(c *gin.Context) {
	book, err := books.FindBook(c.Param("bookUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	available, err := svc.Ledger().IsAvailable(book.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookUid":   book.BookUid,
		"available": available,
	})
}
