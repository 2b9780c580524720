// seed aprovisiona usuarios del sistema: el API no expone registro, así que
// las credenciales se crean (o actualizan) desde esta herramienta.
//
// Uso: go run ./cmd/seed -email user@email.com -password 123456 -nombre "Administrador" -rol admin
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pedidos-api/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "user@email.com", "email del usuario")
	password := flag.String("password", "", "contraseña en claro (se guarda el hash bcrypt)")
	nombre := flag.String("nombre", "Administrador", "nombre para mostrar")
	rol := flag.String("rol", "admin", "rol: admin | vendedor")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "falta -password")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(pool); err != nil {
		fmt.Fprintf(os.Stderr, "migraciones: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de contraseña: %v\n", err)
		os.Exit(1)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO usuarios (id, email, password_hash, nombre, rol)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, nombre = EXCLUDED.nombre, rol = EXCLUDED.rol`,
		uuid.New().String(), *email, string(hash), *nombre, *rol,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "insertar usuario: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("usuario %s listo (rol %s)\n", *email, *rol)
}
