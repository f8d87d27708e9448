package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-management/pkg/circulation"
)

func createFine(c *gin.Context) {
	borrowUid := c.Query("borrowUid")
	if borrowUid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "borrowUid query parameter is required"})
		return
	}

	fine, created, err := svc.RequestFine(borrowUid)
	if err != nil {
		writeError(c, err)
		return
	}

	// A repeated request returns the existing fine without issuing a
	// second notification.
	if !created {
		c.JSON(http.StatusOK, fineResponse(fine))
		return
	}

	if borrow, err := svc.GetBorrow(borrowUid); err == nil {
		dispatcher.Notify(borrow.UserID, borrow.User.UserUid,
			fmt.Sprintf("A fine of %.2f has been issued for an overdue book", fine.Amount))
	}

	c.JSON(http.StatusCreated, fineResponse(fine))
}

func payFine(c *gin.Context) {
	fine, err := svc.PayFine(c.Param("fineUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fineResponse(fine))
}

func deleteFine(c *gin.Context) {
	if err := svc.DeleteFine(c.Param("fineUid")); err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusNoContent, "application/json", nil)
}

func getFine(c *gin.Context) {
	fine, err := svc.GetFine(c.Param("fineUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fineResponse(fine))
}

func getFines(c *gin.Context) {
	fines, err := svc.AllFines()
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, len(fines))
	for i := range fines {
		items[i] = fineResponse(&fines[i])
	}
	c.JSON(http.StatusOK, items)
}

func getFinesByBorrow(c *gin.Context) {
	fines, err := svc.FinesByBorrow(c.Param("borrowUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, len(fines))
	for i := range fines {
		items[i] = fineResponse(&fines[i])
	}
	c.JSON(http.StatusOK, items)
}

// previewFine computes the accrual for a due date without persisting
// anything.
func previewFine(c *gin.Context) {
	dueDateStr := c.Query("dueDate")
	if dueDateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dueDate query parameter is required"})
		return
	}

	dueDate, err := time.Parse("2006-01-02", dueDateStr)
	if err != nil {
		dueDate, err = time.Parse(time.RFC3339, dueDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dueDate must be YYYY-MM-DD or RFC 3339"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"dueDate": dueDate.Format(time.RFC3339),
		"amount":  circulation.CalculateFineAmount(dueDate, time.Now()),
	})
}
