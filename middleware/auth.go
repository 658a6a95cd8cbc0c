package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Define context keys
type contextKey string

const UserIDKey contextKey = "user_id"

var firebaseAuth *auth.Client

// InitializeFirebase initializes the Firebase Admin SDK used for token
// verification. Credentials come from FIREBASE_SERVICE_ACCOUNT_JSON or its
// base64 variant; when neither is set auth checks are disabled for local
// development.
func InitializeFirebase() error {
	log.Println("Starting Firebase initialization...")

	projectID := os.Getenv("FIREBASE_PROJECT_ID")

	credentialsJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if credentialsJSON == "" {
		if encoded := os.Getenv("FIREBASE_SERVICE_ACCOUNT_BASE64"); encoded != "" {
			decoded, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil {
				log.Printf("Error decoding base64 Firebase credentials: %v", err)
				return err
			}
			credentialsJSON = string(decoded)
		}
	}

	if credentialsJSON == "" {
		// No credentials provided. This is the development path: token
		// verification is skipped and requests run as a fixed dev user.
		log.Println("No Firebase credentials found, running in development mode with auth checks disabled")
		return nil
	}

	opt := option.WithCredentialsJSON([]byte(credentialsJSON))
	config := &firebase.Config{ProjectID: projectID}

	app, err := firebase.NewApp(context.Background(), config, opt)
	if err != nil {
		log.Printf("Error initializing Firebase app: %v", err)
		return err
	}

	firebaseAuth, err = app.Auth(context.Background())
	if err != nil {
		log.Printf("Error getting Firebase Auth client: %v", err)
		return err
	}

	log.Println("Firebase Admin SDK initialized successfully")
	return nil
}

// AuthMiddleware verifies Firebase JWT tokens from the Authorization header
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// If Firebase auth is not initialized, skip token verification (dev mode)
		if firebaseAuth == nil {
			ctx := context.WithValue(r.Context(), UserIDKey, "dev-user-1")
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		// Skip auth for OPTIONS requests (CORS preflight)
		if r.Method == "OPTIONS" {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		idToken := extractToken(authHeader)
		if idToken == "" {
			http.Error(w, "Unauthorized: No token provided", http.StatusUnauthorized)
			return
		}

		token, err := verifyToken(idToken)
		if err != nil {
			log.Printf("Error verifying token: %v", err)
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, token.UID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken gets the token from the Authorization header
func extractToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, "Bearer ")
	if len(parts) != 2 {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// verifyToken verifies the Firebase JWT token
func verifyToken(idToken string) (*auth.Token, error) {
	if firebaseAuth == nil {
		return nil, errors.New("Firebase auth client not initialized")
	}

	token, err := firebaseAuth.VerifyIDToken(context.Background(), idToken)
	if err != nil {
		return nil, fmt.Errorf("error verifying ID token: %w", err)
	}

	return token, nil
}

// GetUserIDFromContext retrieves the user ID from the request context
func GetUserIDFromContext(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
