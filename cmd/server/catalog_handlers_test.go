package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateUserHandler(t *testing.T) {
	setupTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, "POST", "/api/v1/users", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
	})

	createUser(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeBody(t, w)
	assert.NotEmpty(t, response["userUid"])
	assert.Equal(t, "alice", response["username"])
}

func TestCreateUserDuplicate(t *testing.T) {
	setupTest(t)
	createFixtures(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, "POST", "/api/v1/users", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
	})

	createUser(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateBookHandler(t *testing.T) {
	setupTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, "POST", "/api/v1/books", gin.H{
		"title":    "The Go Programming Language",
		"author":   "Alan A. A. Donovan",
		"isbn":     "9780134190440",
		"category": "Programming",
	})

	createBook(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, "9780134190440", response["isbn"])
	assert.Equal(t, true, response["available"])
}

func TestCreateBookInvalidIsbn(t *testing.T) {
	setupTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, "POST", "/api/v1/books", gin.H{
		"title":  "Bad ISBN",
		"author": "Someone",
		"isbn":   "123",
	})

	createBook(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookDuplicateIsbn(t *testing.T) {
	setupTest(t)
	createFixtures(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, "POST", "/api/v1/books", gin.H{
		"title":  "Duplicate",
		"author": "Someone",
		"isbn":   "9780000000001",
	})

	createBook(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetBookAvailabilityHandler(t *testing.T) {
	setupTest(t)
	user, book := createFixtures(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/books/"+book.BookUid+"/available", nil)
	c.Params = gin.Params{gin.Param{Key: "bookUid", Value: book.BookUid}}

	getBookAvailability(c)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, true, response["available"])

	_, err := svc.BorrowBook(user.UserUid, book.BookUid)
	assert.NoError(t, err)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/books/"+book.BookUid+"/available", nil)
	c.Params = gin.Params{gin.Param{Key: "bookUid", Value: book.BookUid}}

	getBookAvailability(c)

	assert.Equal(t, http.StatusOK, w.Code)
	response = decodeBody(t, w)
	assert.Equal(t, false, response["available"])
}

func TestGetBooksByIsbn(t *testing.T) {
	setupTest(t)
	_, book := createFixtures(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/books?isbn=9780000000001", nil)

	getBooks(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 1)
	assert.Equal(t, book.BookUid, items[0]["bookUid"])
}

func TestGetBookNotFound(t *testing.T) {
	setupTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/books/missing", nil)
	c.Params = gin.Params{gin.Param{Key: "bookUid", Value: "missing"}}

	getBook(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
