package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeNameOnly(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"java.lang.String", "String"},
		{"com.acme.shop.model.Customer", "Customer"},
		{"Integer", "Integer"},
		{"", ""},
		{"trailing.", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeNameOnly(tt.in))
		})
	}
}

func TestConfigurationClassName(t *testing.T) {
	assert.Equal(t, "MailConfiguration", ConfigurationClassName("MailService"))
	assert.Equal(t, "MailerConfiguration", ConfigurationClassName("Mailer"))
	assert.Equal(t, "Configuration", ConfigurationClassName("Service"))
}

func TestJavaPackageDir(t *testing.T) {
	assert.Equal(t, "com/acme/shop", JavaPackageDir("com.acme.shop"))
	assert.Equal(t, "shop", JavaPackageDir("shop"))
}

func TestResourcePath(t *testing.T) {
	assert.Equal(t, "orders", ResourcePath("Order"))
	assert.Equal(t, "order-lines", ResourcePath("OrderLine"))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Entity Store", Title("entity store"))
	assert.Equal(t, "Shop", FirstUpper("shop"))
}
