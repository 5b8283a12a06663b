package api

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/huertapp/huerto-server/service/achievement"
	"github.com/huertapp/huerto-server/service/comment"
	"github.com/huertapp/huerto-server/service/like"
	"github.com/huertapp/huerto-server/service/plant"
	"github.com/huertapp/huerto-server/service/post"
	"github.com/huertapp/huerto-server/service/user"
)

type APIServer struct {
	address string
	db      *gorm.DB
}

func NewApiServer(address string, db *gorm.DB) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
	}
}

// Router assembles the full HTTP surface: every resource handler behind a
// CORS layer that admits any origin.
func (s *APIServer) Router() http.Handler {
	router := mux.NewRouter()

	userHandler := user.NewHandler(s.db)
	userHandler.RegisterRoutes(router)

	plantHandler := plant.NewHandler(s.db)
	plantHandler.RegisterRoutes(router)

	postHandler := post.NewHandler(s.db)
	postHandler.RegisterRoutes(router)

	achievementHandler := achievement.NewHandler(s.db)
	achievementHandler.RegisterRoutes(router)

	commentHandler := comment.NewHandler(s.db)
	commentHandler.RegisterRoutes(router)

	likeHandler := like.NewHandler(s.db)
	likeHandler.RegisterRoutes(router)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	return handlers.LoggingHandler(os.Stdout, cors(router))
}

func (s *APIServer) Run() error {
	log.Println("Server running at", s.address)
	return http.ListenAndServe(s.address, s.Router())
}
