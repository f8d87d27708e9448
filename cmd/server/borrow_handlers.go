package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func createBorrow(c *gin.Context) {
	var request struct {
		UserUid string `json:"userUid" binding:"required,uuid"`
		BookUid string `json:"bookUid" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	borrow, err := svc.BorrowBook(request.UserUid, request.BookUid)
	if err != nil {
		writeError(c, err)
		return
	}

	dispatcher.Notify(borrow.UserID, request.UserUid,
		fmt.Sprintf("You borrowed a book, due back on %s", borrow.DueDate.Format("2006-01-02")))

	c.JSON(http.StatusCreated, borrowResponse(borrow))
}

func returnBorrow(c *gin.Context) {
	borrow, err := svc.ReturnBook(c.Param("borrowUid"))
	if err != nil {
		writeError(c, err)
		return
	}

	if full, err := svc.GetBorrow(borrow.BorrowUid); err == nil {
		dispatcher.Notify(full.UserID, full.User.UserUid,
			fmt.Sprintf("You returned %q, thank you", full.Book.Title))
	}

	c.JSON(http.StatusOK, borrowResponse(borrow))
}

func getBorrow(c *gin.Context) {
	borrow, err := svc.GetBorrow(c.Param("borrowUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, borrowResponse(borrow))
}

func getBorrows(c *gin.Context) {
	borrows, err := svc.AllBorrows()
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, len(borrows))
	for i := range borrows {
		items[i] = borrowResponse(&borrows[i])
	}
	c.JSON(http.StatusOK, items)
}

func getBorrowsByUser(c *gin.Context) {
	borrows, err := svc.BorrowsByUser(c.Param("userUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, len(borrows))
	for i := range borrows {
		items[i] = borrowResponse(&borrows[i])
	}
	c.JSON(http.StatusOK, items)
}

func getBorrowsByBook(c *gin.Context) {
	borrows, err := svc.BorrowsByBook(c.Param("bookUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, len(borrows))
	for i := range borrows {
		items[i] = borrowResponse(&borrows[i])
	}
	c.JSON(http.StatusOK, items)
}
