package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"ridebook/internal/config"
	"ridebook/internal/models"
	"ridebook/internal/payments"
)

// ReconciliationReport pulls a provider balance snapshot, diffs it against
// local payment rows and returns the flagged discrepancies.
func ReconciliationReport(c *gin.Context) {
	tolerance := config.ReconcileToleranceCents()
	if v := c.Query("tolerance"); v != "" {
		tolerance = cast.ToInt64(v)
	}
	limit := int64(100)
	if v := c.Query("limit"); v != "" {
		limit = cast.ToInt64(v)
	}

	snapshot, err := stripeClient.BalanceSnapshot(limit)
	if err != nil {
		logrus.WithError(err).Error("ReconciliationReport: snapshot failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider error: " + err.Error()})
		return
	}

	var local []models.Payment
	if err := config.DB.Find(&local).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	discrepancies := payments.Reconcile(local, snapshot, tolerance)

	c.JSON(http.StatusOK, gin.H{
		"tolerance":       tolerance,
		"local_payments":  len(local),
		"provider_txns":   len(snapshot),
		"discrepancies":   discrepancies,
		"discrepancy_len": len(discrepancies),
	})
}

// MarkReconciled records the manual reconciliation of a payment.
func MarkReconciled(c *gin.Context) {
	id := c.Param("id")

	var payment models.Payment
	if err := config.DB.First(&payment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	now := time.Now()
	payment.Reconciled = true
	payment.ReconciledAt = &now
	if err := config.DB.Save(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not mark payment reconciled"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}
