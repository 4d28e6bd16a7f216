package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {"title": "Scolarité API", "description": "Grades, results, certificates and tuition fees of a higher education school.", "version": "1.0.0"},
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
    "tags": [{"name": "Programs"}, {"name": "Classes"}, {"name": "Subjects"}, {"name": "Students"}, {"name": "Registrations"}, {"name": "Sessions"}, {"name": "Evaluations"}, {"name": "Scores"}, {"name": "Results"}, {"name": "Snapshots"}, {"name": "Documents"}, {"name": "Certificates"}, {"name": "Fees"}, {"name": "Statistics"}],
    "paths": {
        "/programs": {
            "get": {"tags": ["Programs"], "summary": "List programs", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Programs"], "summary": "Create program", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateProgramRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/programs/{id}": {
            "get": {"tags": ["Programs"], "summary": "Get program with its classes", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Programs"], "summary": "Delete program", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/classes": {
            "get": {"tags": ["Classes"], "summary": "List classes", "parameters": [{"name": "program_id", "in": "query", "type": "string", "required": false}, {"name": "level", "in": "query", "type": "integer", "required": false}, {"name": "search", "in": "query", "type": "string", "required": false}, {"name": "page", "in": "query", "type": "integer", "required": false}, {"name": "limit", "in": "query", "type": "integer", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Classes"], "summary": "Create class", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/classes/{id}": {
            "get": {"tags": ["Classes"], "summary": "Get class", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Classes"], "summary": "Update class", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Classes"], "summary": "Delete class", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/subjects": {
            "get": {"tags": ["Subjects"], "summary": "List subjects", "parameters": [{"name": "class_id", "in": "query", "type": "string", "required": false}, {"name": "search", "in": "query", "type": "string", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Subjects"], "summary": "Create subject", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubjectRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/subjects/{id}": {
            "get": {"tags": ["Subjects"], "summary": "Get subject", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Subjects"], "summary": "Update subject", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubjectRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Subjects"], "summary": "Delete subject", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/students": {
            "get": {"tags": ["Students"], "summary": "List students", "parameters": [{"name": "search", "in": "query", "type": "string", "required": false}, {"name": "class_id", "in": "query", "type": "string", "required": false}, {"name": "active", "in": "query", "type": "boolean", "required": false}, {"name": "page", "in": "query", "type": "integer", "required": false}, {"name": "limit", "in": "query", "type": "integer", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Students"], "summary": "Create student", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/students/{id}": {
            "get": {"tags": ["Students"], "summary": "Get student", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Students"], "summary": "Update student", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Students"], "summary": "Delete student", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/students/{id}/active": {
            "patch": {"tags": ["Students"], "summary": "Activate or deactivate a student", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetActiveRequest"}}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/students/matricule/{matricule}": {
            "get": {"tags": ["Students"], "summary": "Find a student by matricule", "parameters": [{"name": "matricule", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/registrations": {
            "get": {"tags": ["Registrations"], "summary": "List registrations", "parameters": [{"name": "status", "in": "query", "type": "string", "required": false}, {"name": "program_id", "in": "query", "type": "string", "required": false}, {"name": "page", "in": "query", "type": "integer", "required": false}, {"name": "limit", "in": "query", "type": "integer", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Registrations"], "summary": "Submit a registration", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRegistrationRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/registrations/{id}/validate": {
            "post": {"tags": ["Registrations"], "summary": "Validate a registration into a student", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/registrations/{id}/reject": {
            "post": {"tags": ["Registrations"], "summary": "Reject a registration", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/sessions": {
            "get": {"tags": ["Sessions"], "summary": "List exam sessions", "parameters": [{"name": "school_year", "in": "query", "type": "string", "required": false}, {"name": "title", "in": "query", "type": "string", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Sessions"], "summary": "Create exam session", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSessionRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/sessions/{id}": {
            "get": {"tags": ["Sessions"], "summary": "Get exam session", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Sessions"], "summary": "Delete exam session", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/evaluations": {
            "get": {"tags": ["Evaluations"], "summary": "List evaluations", "parameters": [{"name": "kind", "in": "query", "type": "string", "required": false}, {"name": "session_id", "in": "query", "type": "string", "required": false}, {"name": "subject_id", "in": "query", "type": "string", "required": false}, {"name": "class_id", "in": "query", "type": "string", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Evaluations"], "summary": "Create evaluation", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEvaluationRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/evaluations/ensure": {
            "post": {"tags": ["Evaluations"], "summary": "Get or create an evaluation", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnsureEvaluationRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/evaluations/{id}": {
            "get": {"tags": ["Evaluations"], "summary": "Get evaluation", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Evaluations"], "summary": "Delete evaluation and its scores", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/evaluations/{id}/scores": {
            "get": {"tags": ["Scores"], "summary": "List scores of an evaluation", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/scores": {
            "post": {"tags": ["Scores"], "summary": "Record a single score", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordScoreRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/scores/bulk": {
            "post": {"tags": ["Scores"], "summary": "Record scores for many students", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkScoreRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/scores/{id}": {
            "delete": {"tags": ["Scores"], "summary": "Delete a score", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/results/students/{id}": {
            "get": {"tags": ["Results"], "summary": "Result of a student for a session", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "session_id", "in": "query", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/results/students/{id}/subjects/{subject_id}": {
            "get": {"tags": ["Results"], "summary": "Average of a student in one subject", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "subject_id", "in": "path", "type": "string", "required": true}, {"name": "session_id", "in": "query", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/results/classes/{id}": {
            "get": {"tags": ["Results"], "summary": "Results of every student of a class", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "session_id", "in": "query", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/result-settings": {
            "get": {"tags": ["Snapshots"], "summary": "Get the active result session", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Snapshots"], "summary": "Select the active result session", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResultSettingRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Snapshots"], "summary": "Change the active result session", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResultSettingRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/snapshots": {
            "get": {"tags": ["Snapshots"], "summary": "List stored snapshots of a class", "parameters": [{"name": "class_id", "in": "query", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/snapshots/students/{id}": {
            "get": {"tags": ["Snapshots"], "summary": "Get the stored snapshot of a student", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Snapshots"], "summary": "Recompute the snapshot of a student", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/snapshots/classes/{id}": {
            "post": {"tags": ["Snapshots"], "summary": "Recompute the snapshots of a class", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/documents/transcripts/{student_id}": {
            "get": {"tags": ["Documents"], "summary": "Transcript of a student", "parameters": [{"name": "student_id", "in": "path", "type": "string", "required": true}, {"name": "session_id", "in": "query", "type": "string", "required": true}, {"name": "link", "in": "query", "type": "boolean", "required": false}], "responses": {"200": {"description": "PDF document", "schema": {"type": "file"}}}, "security": [{"BearerAuth": []}], "produces": ["application/pdf", "application/json"]}
        },
        "/documents/download": {
            "get": {"tags": ["Documents"], "summary": "Download a document through a signed token", "parameters": [{"name": "token", "in": "query", "type": "string", "required": true}], "responses": {"200": {"description": "PDF document", "schema": {"type": "file"}}}, "produces": ["application/pdf"]}
        },
        "/certificates": {
            "get": {"tags": ["Certificates"], "summary": "List certificates", "parameters": [{"name": "student_id", "in": "query", "type": "string", "required": false}, {"name": "type", "in": "query", "type": "string", "required": false}, {"name": "valid", "in": "query", "type": "boolean", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Certificates"], "summary": "Issue an attestation", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/IssueCertificateRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/certificates/{id}": {
            "get": {"tags": ["Certificates"], "summary": "Get certificate with a fresh download link", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/certificates/{id}/revoke": {
            "post": {"tags": ["Certificates"], "summary": "Revoke a certificate", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/certificates/verify/{number}": {
            "get": {"tags": ["Certificates"], "summary": "Verify a certificate number", "parameters": [{"name": "number", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/fees": {
            "get": {"tags": ["Fees"], "summary": "List tuition payments", "parameters": [{"name": "student_id", "in": "query", "type": "string", "required": false}, {"name": "class_id", "in": "query", "type": "string", "required": false}, {"name": "month", "in": "query", "type": "string", "required": false}, {"name": "page", "in": "query", "type": "integer", "required": false}, {"name": "limit", "in": "query", "type": "integer", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Fees"], "summary": "Record a tuition payment", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateFeeRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/fees/{id}": {
            "put": {"tags": ["Fees"], "summary": "Update a tuition payment", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateFeeRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Fees"], "summary": "Delete a tuition payment", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}
        },
        "/fees/students/{id}/summary": {
            "get": {"tags": ["Fees"], "summary": "Paid, due and unpaid months of a student", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/fees/classes/{id}": {
            "get": {"tags": ["Fees"], "summary": "Finance status of a class", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "month", "in": "query", "type": "string", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/statistics": {
            "get": {"tags": ["Statistics"], "summary": "Totals across classes, programs and sessions", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/statistics/classes": {
            "get": {"tags": ["Statistics"], "summary": "Active and inactive students per class", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        }
    },
    "definitions": {
        "CreateProgramRequest": {"type": "object", "properties": {"name": {"type": "string"}, "auto_create_classes": {"type": "boolean"}}, "required": ["name"]},
        "ClassRequest": {"type": "object", "properties": {"program_id": {"type": "string"}, "level": {"type": "integer", "enum": [1, 2, 3]}}, "required": ["program_id", "level"]},
        "SubjectRequest": {"type": "object", "properties": {"class_id": {"type": "string"}, "name": {"type": "string"}, "abbreviation": {"type": "string"}, "coefficient": {"type": "integer"}}, "required": ["class_id", "name"]},
        "StudentRequest": {"type": "object", "properties": {"full_name": {"type": "string"}, "class_id": {"type": "string"}, "birth_date": {"type": "string", "format": "date-time"}, "birth_place": {"type": "string"}, "school_year": {"type": "string", "example": "2024-2025"}, "active": {"type": "boolean"}}, "required": ["full_name", "class_id", "school_year"]},
        "SetActiveRequest": {"type": "object", "properties": {"active": {"type": "boolean"}}, "required": ["active"]},
        "CreateRegistrationRequest": {"type": "object", "properties": {"last_name": {"type": "string"}, "first_name": {"type": "string"}, "birth_date": {"type": "string", "format": "date-time"}, "birth_place": {"type": "string"}, "program_id": {"type": "string"}, "level": {"type": "integer"}, "school_year": {"type": "string"}}, "required": ["last_name", "first_name", "program_id", "level"]},
        "CreateSessionRequest": {"type": "object", "properties": {"title": {"type": "string", "enum": ["Semestre 1", "Semestre 2", "Rattrapage"]}, "school_year": {"type": "string"}}, "required": ["title", "school_year"]},
        "CreateEvaluationRequest": {"type": "object", "properties": {"kind": {"type": "string", "enum": ["coursework", "exam"]}, "session_id": {"type": "string"}, "subject_id": {"type": "string"}, "title": {"type": "string"}, "held_on": {"type": "string", "format": "date-time"}, "with_exam": {"type": "boolean"}}, "required": ["kind", "session_id", "subject_id"]},
        "EnsureEvaluationRequest": {"type": "object", "properties": {"kind": {"type": "string", "enum": ["coursework", "exam"]}, "session_id": {"type": "string"}, "subject_id": {"type": "string"}}, "required": ["kind", "session_id", "subject_id"]},
        "RecordScoreRequest": {"type": "object", "properties": {"evaluation_id": {"type": "string"}, "student_id": {"type": "string"}, "value": {"type": "number", "minimum": 0, "maximum": 20}}, "required": ["evaluation_id", "student_id", "value"]},
        "BulkScoreItem": {"type": "object", "properties": {"student_id": {"type": "string"}, "value": {"type": "number"}}},
        "BulkScoreRequest": {"type": "object", "properties": {"evaluation_id": {"type": "string"}, "kind": {"type": "string"}, "session_id": {"type": "string"}, "subject_id": {"type": "string"}, "scores": {"type": "array", "items": {"$ref": "#/definitions/BulkScoreItem"}}}, "required": ["scores"]},
        "ResultSettingRequest": {"type": "object", "properties": {"session_id": {"type": "string"}}, "required": ["session_id"]},
        "IssueCertificateRequest": {"type": "object", "properties": {"student_id": {"type": "string"}, "type": {"type": "string", "enum": ["inscription", "frequentation"]}}, "required": ["student_id", "type"]},
        "CreateFeeRequest": {"type": "object", "properties": {"student_id": {"type": "string"}, "month": {"type": "string", "enum": ["Octobre", "Novembre", "Décembre", "Janvier", "Février", "Mars", "Avril", "Mai", "Juin", "Juillet"]}, "amount": {"type": "number"}, "paid_at": {"type": "string", "format": "date-time"}, "is_complete": {"type": "boolean"}}, "required": ["student_id", "month", "amount"]},
        "UpdateFeeRequest": {"type": "object", "properties": {"month": {"type": "string", "enum": ["Octobre", "Novembre", "Décembre", "Janvier", "Février", "Mars", "Avril", "Mai", "Juin", "Juillet"]}, "amount": {"type": "number"}, "paid_at": {"type": "string", "format": "date-time"}, "is_complete": {"type": "boolean"}}, "required": ["month", "amount"]},
        "Pagination": {"type": "object", "properties": {"page": {"type": "integer"}, "page_size": {"type": "integer"}, "total_count": {"type": "integer"}}},
        "APIError": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"}}},
        "ResponseEnvelope": {"type": "object", "properties": {"data": {"type": "object"}, "error": {"$ref": "#/definitions/APIError"}, "pagination": {"$ref": "#/definitions/Pagination"}, "meta": {"type": "object"}}}
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
