package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"coachdesk/backend/database"
	"coachdesk/backend/middleware"
	"coachdesk/backend/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/yuin/goldmark"
)

// articleResponse is an article plus its markdown body rendered to HTML
type articleResponse struct {
	models.Article
	HTML string `json:"html"`
}

func GetArticles(w http.ResponseWriter, r *http.Request) {
	query := `
		SELECT id, title, slug, category, body, published, created_by, created_at, updated_at
		FROM articles
		WHERE 1=1
	`
	args := []interface{}{}

	category := r.URL.Query().Get("category")
	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}

	published := r.URL.Query().Get("published")
	if published != "" {
		query += " AND published = ?"
		args = append(args, published == "true")
	}

	search := r.URL.Query().Get("q")
	if search != "" {
		query += " AND (title LIKE ? OR body LIKE ?)"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}

	query += " ORDER BY updated_at DESC"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		var a models.Article
		var category nullString
		err := rows.Scan(&a.ID, &a.Title, &a.Slug, &category, &a.Body,
			&a.Published, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		a.Category = category.value()
		articles = append(articles, a)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(articles)
}

// GetArticle returns one article with its body rendered to HTML
func GetArticle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var a models.Article
	var category nullString
	err := database.DB.QueryRow(`
		SELECT id, title, slug, category, body, published, created_by, created_at, updated_at
		FROM articles
		WHERE id = ? OR slug = ?
	`, id, id).Scan(&a.ID, &a.Title, &a.Slug, &category, &a.Body,
		&a.Published, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		http.Error(w, "Article not found", http.StatusNotFound)
		return
	}
	a.Category = category.value()

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(a.Body), &buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(articleResponse{Article: a, HTML: buf.String()})
}

func AddArticle(w http.ResponseWriter, r *http.Request) {
	var a models.Article
	err := json.NewDecoder(r.Body).Decode(&a)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if a.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Slug == "" {
		a.Slug = slugify(a.Title)
	}
	if a.CreatedBy == "" {
		a.CreatedBy = middleware.GetUserIDFromContext(r)
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err = database.DB.Exec(`
		INSERT INTO articles (id, title, slug, category, body, published, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Title, a.Slug, a.Category, a.Body, a.Published, a.CreatedBy, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(a)
}

func UpdateArticle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var a models.Article
	err := json.NewDecoder(r.Body).Decode(&a)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err = database.DB.Exec(`
		UPDATE articles
		SET title = ?, slug = ?, category = ?, body = ?, published = ?, updated_at = ?
		WHERE id = ?
	`, a.Title, a.Slug, a.Category, a.Body, a.Published, time.Now(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteArticle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	_, err := database.DB.Exec("DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	lastDash := false
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
