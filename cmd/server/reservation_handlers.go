package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func createReservation(c *gin.Context) {
	var request struct {
		UserUid string `json:"userUid" binding:"required,uuid"`
		BookUid string `json:"bookUid" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	reservation, err := svc.Reserve(request.UserUid, request.BookUid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reservationResponse(reservation))
}

func confirmReservation(c *gin.Context) {
	reservation, err := svc.ConfirmReservation(c.Param("reservationUid"))
	if err != nil {
		writeError(c, err)
		return
	}

	if full, err := svc.GetReservation(reservation.ReservationUid); err == nil {
		dispatcher.Notify(full.UserID, full.User.UserUid,
			fmt.Sprintf("Your reservation for %q is confirmed", full.Book.Title))
	}

	c.JSON(http.StatusOK, reservationResponse(reservation))
}

func cancelReservation(c *gin.Context) {
	if err := svc.CancelReservation(c.Param("reservationUid")); err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusNoContent, "application/json", nil)
}

func getReservation(c *gin.Context) {
	reservation, err := svc.GetReservation(c.Param("reservationUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservationResponse(reservation))
}

func getReservations(c *gin.Context) {
	reservations, err := svc.AllReservations()
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, len(reservations))
	for i := range reservations {
		items[i] = reservationResponse(&reservations[i])
	}
	c.JSON(http.StatusOK, items)
}

func getReservationsByUser(c *gin.Context) {
	reservations, err := svc.ReservationsByUser(c.Param("userUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, len(reservations))
	for i := range reservations {
		items[i] = reservationResponse(&reservations[i])
	}
	c.JSON(http.StatusOK, items)
}

func getReservationsByBook(c *gin.Context) {
	reservations, err := svc.ReservationsByBook(c.Param("bookUid"))
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, len(reservations))
	for i := range reservations {
		items[i] = reservationResponse(&reservations[i])
	}
	c.JSON(http.StatusOK, items)
}
