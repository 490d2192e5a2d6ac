// Package docs registra la descripción OpenAPI del servicio en swag; el router
// la sirve en /swagger/doc.json y la UI en /swagger/index.html.
// Las anotaciones godoc de los handlers son la fuente de verdad: al regenerar
// con `swag init -g cmd/api/main.go -o internal/docs` este template se reemplaza.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/health": {"get": {"tags": ["ops"], "summary": "Liveness", "security": [], "responses": {"200": {"description": "ok"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Iniciar sesión", "security": [], "responses": {"200": {"description": "token"}, "401": {"description": "invalid credentials"}, "429": {"description": "too many requests"}}}},
        "/auth/session": {"get": {"tags": ["auth"], "summary": "Restaurar sesión", "responses": {"200": {"description": "user"}, "401": {"description": "unauthorized"}}}},
        "/auth/logout": {"post": {"tags": ["auth"], "summary": "Cerrar sesión", "responses": {"204": {"description": "closed"}}}},
        "/navigation": {"get": {"tags": ["auth"], "summary": "Secciones visibles para el rol", "responses": {"200": {"description": "items"}}}},
        "/dashboard": {"get": {"tags": ["dashboard"], "summary": "Resumen del día", "responses": {"200": {"description": "overview"}}}},
        "/customers": {
            "get": {"tags": ["customers"], "summary": "Listar clientes", "responses": {"200": {"description": "list"}}},
            "post": {"tags": ["customers"], "summary": "Crear cliente", "responses": {"201": {"description": "created"}, "422": {"description": "validation failed"}}}
        },
        "/customers/{customerID}": {
            "get": {"tags": ["customers"], "summary": "Obtener cliente", "responses": {"200": {"description": "customer"}, "404": {"description": "not found"}}},
            "patch": {"tags": ["customers"], "summary": "Actualizar cliente", "responses": {"200": {"description": "customer"}, "404": {"description": "not found"}}},
            "delete": {"tags": ["customers"], "summary": "Borrar cliente y sus mascotas", "responses": {"200": {"description": "deleted"}, "409": {"description": "referenced"}}}
        },
        "/customers/{customerID}/pets": {"get": {"tags": ["customers"], "summary": "Mascotas del cliente", "responses": {"200": {"description": "list"}}}},
        "/pets": {
            "get": {"tags": ["pets"], "summary": "Listar mascotas", "responses": {"200": {"description": "list"}}},
            "post": {"tags": ["pets"], "summary": "Crear mascota", "responses": {"201": {"description": "created"}}}
        },
        "/pets/{petID}": {
            "get": {"tags": ["pets"], "summary": "Obtener mascota", "responses": {"200": {"description": "pet"}}},
            "patch": {"tags": ["pets"], "summary": "Actualizar mascota", "responses": {"200": {"description": "pet"}}},
            "delete": {"tags": ["pets"], "summary": "Borrar mascota", "responses": {"204": {"description": "deleted"}}}
        },
        "/veterinarians": {"get": {"tags": ["catalog"], "summary": "Veterinarios", "responses": {"200": {"description": "list"}}}},
        "/services": {"get": {"tags": ["catalog"], "summary": "Servicios facturables", "responses": {"200": {"description": "list"}}}},
        "/settings": {"get": {"tags": ["settings"], "summary": "Configuración de la clínica (admin)", "responses": {"200": {"description": "settings"}, "403": {"description": "forbidden"}}}},
        "/appointments": {
            "get": {"tags": ["appointments"], "summary": "Listar citas", "responses": {"200": {"description": "list"}}},
            "post": {"tags": ["appointments"], "summary": "Agendar cita", "responses": {"201": {"description": "created"}}}
        },
        "/appointments/{appointmentID}": {
            "get": {"tags": ["appointments"], "summary": "Obtener cita", "responses": {"200": {"description": "appointment"}}},
            "patch": {"tags": ["appointments"], "summary": "Actualizar cita", "responses": {"200": {"description": "appointment"}}},
            "delete": {"tags": ["appointments"], "summary": "Borrar cita", "responses": {"204": {"description": "deleted"}}}
        },
        "/calendar": {"get": {"tags": ["appointments"], "summary": "Agenda semana/día", "responses": {"200": {"description": "view"}}}},
        "/medical-records": {
            "get": {"tags": ["medical-records"], "summary": "Historial clínico", "responses": {"200": {"description": "list"}}},
            "post": {"tags": ["medical-records"], "summary": "Registrar atención", "responses": {"201": {"description": "created"}}}
        },
        "/medical-records/{recordID}": {
            "get": {"tags": ["medical-records"], "summary": "Obtener registro", "responses": {"200": {"description": "record"}}},
            "patch": {"tags": ["medical-records"], "summary": "Actualizar registro", "responses": {"200": {"description": "record"}}}
        },
        "/invoices": {
            "get": {"tags": ["invoices"], "summary": "Listar facturas", "responses": {"200": {"description": "list"}}},
            "post": {"tags": ["invoices"], "summary": "Emitir factura", "responses": {"201": {"description": "created"}}}
        },
        "/invoices/preview": {"post": {"tags": ["invoices"], "summary": "Previsualizar totales", "responses": {"200": {"description": "totals"}}}},
        "/invoices/summary": {"get": {"tags": ["invoices"], "summary": "Acumulados del listado", "responses": {"200": {"description": "summary"}}}},
        "/invoices/{invoiceID}": {
            "get": {"tags": ["invoices"], "summary": "Obtener factura", "responses": {"200": {"description": "invoice"}}},
            "patch": {"tags": ["invoices"], "summary": "Actualizar factura", "responses": {"200": {"description": "invoice"}}}
        }
    }
}`

// SwaggerInfo se puede ajustar desde main (Host, Version).
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Vet Practice Management API",
	Description:      "Clientes, mascotas, agenda, historial clínico y facturación de la clínica.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
