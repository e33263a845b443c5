package contextkeys

type contextKey string

// DBContextKey holds the request-scoped *gorm.DB (pool or transaction).
const DBContextKey = contextKey("db")

// IdentityContextKey holds the *models.User resolved by the authorization pipeline.
const IdentityContextKey = contextKey("identity")
