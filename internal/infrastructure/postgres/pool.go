package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Bodega-api/pkg/config"
)

// NewPool abre el pool de conexiones PostgreSQL. El DSN sale de DATABASE_URL
// si está definido, o se arma desde DB_HOST, DB_PORT, etc. En ambos casos se
// fuerza IPv4 al conectar: en contenedores sin IPv6 el DNS puede devolver
// solo registros AAAA y el dial se cae.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	dsn := cfg.DatabaseURL
	if dsn != "" {
		dsn = rewriteHostToIPv4(dsn)
	} else {
		if ipv4, err := lookupIPv4(cfg.Host); err == nil {
			cfg.Host = ipv4
		}
		dsn = cfg.DSN()
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.DialFunc = dialIPv4

	// Las columnas NUMERIC (peso, costo) se leen como shopspring/decimal.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// dialIPv4 conecta por tcp4 cuando el host tiene dirección IPv4; si no la
// tiene, deja que el dial normal decida.
func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ipv4, err := lookupIPv4(host)
	if err != nil {
		return dialer.DialContext(ctx, network, addr)
	}
	return dialer.DialContext(ctx, "tcp4", net.JoinHostPort(ipv4, port))
}

// lookupIPv4 resuelve el host a una dirección IPv4. Si el resolver del
// sistema no entrega ninguna (DNS de contenedor que solo responde AAAA),
// reintenta contra un DNS público.
func lookupIPv4(host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("host %q es IPv6", host)
	}
	if ips, err := net.LookupIP(host); err == nil {
		if ipv4 := firstIPv4(ips); ipv4 != "" {
			return ipv4, nil
		}
	}
	resolver := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			d := net.Dialer{}
			return d.DialContext(ctx, "udp", "8.8.8.8:53")
		},
	}
	ips, err := resolver.LookupIP(context.Background(), "ip4", host)
	if err != nil {
		return "", err
	}
	if ipv4 := firstIPv4(ips); ipv4 != "" {
		return ipv4, nil
	}
	return "", fmt.Errorf("host %q sin IPv4", host)
}

func firstIPv4(ips []net.IP) string {
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String()
		}
	}
	return ""
}

// rewriteHostToIPv4 sustituye el hostname de la URL por su IPv4 cuando existe.
func rewriteHostToIPv4(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return databaseURL
	}
	ipv4, err := lookupIPv4(u.Hostname())
	if err != nil {
		return databaseURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	u.Host = net.JoinHostPort(ipv4, port)
	return u.String()
}
