package cli

import (
	"github.com/valter-silva-au/onboard/internal/integration"
	"github.com/valter-silva-au/onboard/internal/observability"
	"github.com/valter-silva-au/onboard/internal/storage"
	"github.com/valter-silva-au/onboard/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath   string
	Config     *models.GlobalConfig
	GuideStore storage.GuideStoreManager
	MCPClient  integration.MCPClient
	EventLog   observability.EventLog
)
