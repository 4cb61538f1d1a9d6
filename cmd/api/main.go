package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/BarberiaElCorte/barber-pos-api/internal/config"
	dbpkg "github.com/BarberiaElCorte/barber-pos-api/internal/db"
	"github.com/BarberiaElCorte/barber-pos-api/internal/routes"
)

func main() {

	// .env is optional; in producción las variables vienen del entorno.
	_ = godotenv.Load()

	cfg := config.Load()

	db := dbpkg.NewDB(cfg)
	defer dbpkg.Close(db)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
