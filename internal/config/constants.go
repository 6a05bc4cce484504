// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "CourseKeep"
	AppVersion = "1.1.0"
)

// デフォルト設定値
const (
	DefaultServerPort             = ":8080"
	DefaultLogLevel               = "info"
	DefaultJWTExpiresInMinutes    = 60
	DefaultDraftDebounceMs        = 1500
	DefaultDraftLocalTTLHours     = 72
	DefaultSyncSaveTimeoutSeconds = 30
	DefaultCatalogPageSize        = 20
)

// 決済は外部コラボレータ (成功/失敗の不透明なコールバックのみ)
const PaymentGatewayAPIEndpoint = "https://api.paymentprovider.com/v1"
