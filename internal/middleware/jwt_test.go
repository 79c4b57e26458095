package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateToken(t *testing.T) {
	tokenStr, err := GenerateToken(42, "rider")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	token, err := ValidateToken(tokenStr)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !token.Valid {
		t.Fatal("expected token to be valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if uint(claims["user_id"].(float64)) != 42 {
		t.Fatalf("expected user_id 42, got %v", claims["user_id"])
	}
	if claims["role"] != "rider" {
		t.Fatalf("expected role rider, got %v", claims["role"])
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestRequireAuthWithRoleRejectsWrongRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlerRan := false
	r.GET("/admin/bookings", RequireAuthWithRole("admin"), func(c *gin.Context) {
		handlerRan = true
		c.JSON(http.StatusOK, gin.H{"data": "bookings"})
	})

	token, err := GenerateToken(7, "rider")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if handlerRan {
		t.Fatal("handler ran for a rider token on an admin route")
	}
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (body %s)", w.Code, w.Body.String())
	}
}

func TestRequireAuthWithRoleAllowsMatchingRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/bookings", RequireAuthWithRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "bookings"})
	})

	token, err := GenerateToken(1, "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", w.Code, w.Body.String())
	}
}

func TestRequireAuthWithRoleRejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlerRan := false
	r.GET("/admin/bookings", RequireAuthWithRole("admin"), func(c *gin.Context) {
		handlerRan = true
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if handlerRan {
		t.Fatal("handler ran without a token")
	}
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestSecretResolvedAtSigningTime(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateToken(3, "rider")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateToken(token); err != nil {
		t.Fatalf("validate under same secret: %v", err)
	}

	t.Setenv("JWT_SECRET", "rotated-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("token signed under the old secret should not validate after rotation")
	}
}
