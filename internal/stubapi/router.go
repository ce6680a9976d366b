package stubapi

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	oauth := router.Group("/oauth/" + s.opts.ProjectKey)
	oauth.POST("/anonymous/token", s.anonymousTokenHandler)
	oauth.POST("/customers/token", s.customerTokenHandler)

	project := router.Group("/" + s.opts.ProjectKey)
	project.GET("/product-projections", s.productsHandler)
	project.GET("/product-projections/search", s.productsHandler)
	project.GET("/categories", s.categoriesHandler)
	project.POST("/customers", s.requireToken, s.signupHandler)

	me := project.Group("/me", s.requireToken)
	me.GET("", s.requireCustomer, s.meHandler)
	me.POST("", s.requireCustomer, s.updateMeHandler)
	me.POST("/password", s.requireCustomer, s.changePasswordHandler)
	me.GET("/active-cart", s.activeCartHandler)
	me.POST("/carts", s.createCartHandler)
	me.POST("/carts/:id", s.updateCartHandler)

	return router
}

// requireToken validates the bearer token and stashes its identity.
func (s *Server) requireToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		s.fail(c, http.StatusUnauthorized, "invalid_token", "Bearer token required.", "")
		c.Abort()
		return
	}
	meta, ok := s.validateToken(token)
	if !ok {
		s.fail(c, http.StatusUnauthorized, "invalid_token", "The access token is invalid or expired.", "")
		c.Abort()
		return
	}
	c.Set("identity", meta)
	c.Next()
}

// requireCustomer rejects anonymous identities.
func (s *Server) requireCustomer(c *gin.Context) {
	meta := identity(c)
	if meta.customerID == "" {
		s.fail(c, http.StatusForbidden, "insufficient_scope", "A customer token is required.", "")
		c.Abort()
		return
	}
	c.Next()
}

func identity(c *gin.Context) tokenMeta {
	v, _ := c.Get("identity")
	meta, _ := v.(tokenMeta)
	return meta
}
