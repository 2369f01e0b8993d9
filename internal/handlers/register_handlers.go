package handlers

import (
	"reflect"

	portssvc "github.com/tripbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/tripbooks/gst_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators teaches the binding validator how to read decimal fields,
// so tags like gt=0 work on request amounts.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
	}
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	RegisterValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	r.GET("/", GetHome)

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	// The upstream gateway authenticates requests and forwards the actor
	// identity in headers; ActorMiddleware lifts it into the context.
	v1 := r.Group("/api/v1", middleware.ActorMiddleware())

	// Delegate route registration to specific handlers, passing required services
	registerInvoiceRoutes(v1, services.Invoice)
	registerCreditNoteRoutes(v1, services.CreditNote)
	registerPaymentRoutes(v1, services.Payment)
	registerLedgerRoutes(v1, services.Ledger)
	registerReportingRoutes(v1, services.PL)
	registerExportRoutes(v1, services.Export)
	registerCompanyRoutes(v1, services.Company)
}
