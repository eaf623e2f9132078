package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "CART_CONFIG_FILE"

type consumers struct {
	OrderArchiverGroup string `mapstructure:"order_archiver_group"`
	ProductStatsGroup  string `mapstructure:"product_stats_group"`
}

type topics struct {
	CartEvents string `mapstructure:"cart_events"`
	Orders     string `mapstructure:"orders"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
}

type cartStore struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	CartKey  string `mapstructure:"cart_key"`
}

type whatsapp struct {
	BaseURL       string `mapstructure:"base_url"`
	APIVersion    string `mapstructure:"api_version"`
	AccessToken   string `mapstructure:"access_token"`
	PhoneNumberID string `mapstructure:"phone_number_id"`
	Recipient     string `mapstructure:"recipient"`
}

type email struct {
	BaseURL    string `mapstructure:"base_url"`
	ServiceID  string `mapstructure:"service_id"`
	TemplateID string `mapstructure:"template_id"`
	PublicKey  string `mapstructure:"public_key"`
}

type checkout struct {
	StoreName string   `mapstructure:"store_name"`
	WhatsApp  whatsapp `mapstructure:"whatsapp"`
	Email     email    `mapstructure:"email"`
}

type httpServer struct {
	Addr           string        `mapstructure:"addr"`
	HandlerTimeout time.Duration `mapstructure:"handler_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

type Config struct {
	LogLevel   slog.Level `mapstructure:"log_level"`
	HTTPServer httpServer `mapstructure:"http_server"`
	SQLDB      string     `mapstructure:"sql_db"`
	CartStore  cartStore  `mapstructure:"cart_store"`
	Checkout   checkout   `mapstructure:"checkout"`
	Broker     broker     `mapstructure:"broker"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	SQLDB=%q

	HTTPServer:
	Addr=%q
	HandlerTimeout=%s
	IdleTimeout=%s

	CartStore:
	Addr=%q
	DB=%d
	CartKey=%q

	Checkout:
	StoreName=%q
	WhatsAppRecipient=%q
	EmailServiceID=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		CartEvents=%q
		Orders=%q
	Consumers:
		OrderArchiverGroup=%q
		ProductStatsGroup=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.SQLDB,
		c.HTTPServer.Addr,
		c.HTTPServer.HandlerTimeout,
		c.HTTPServer.IdleTimeout,
		c.CartStore.Addr,
		c.CartStore.DB,
		c.CartStore.CartKey,
		c.Checkout.StoreName,
		c.Checkout.WhatsApp.Recipient,
		c.Checkout.Email.ServiceID,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.CartEvents,
		c.Broker.Topics.Orders,
		c.Broker.Consumers.OrderArchiverGroup,
		c.Broker.Consumers.ProductStatsGroup,
	)
}
