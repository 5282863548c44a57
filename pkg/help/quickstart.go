package help

const QuickstartYAML = `# page-rescue Quick Start

commands:
  serve: |
    page-rescue serve
    curl -X POST localhost:5000/report404 -d '{"url": "https://example.com/gone"}'

  report_one: |
    page-rescue report "https://example.com/gone"

  evaluate: |
    page-rescue evaluate
    page-rescue evaluate --format yaml --mode readability

  list_records: |
    page-rescue db records --limit 50

  show_record: |
    page-rescue db show 12

  import_export: |
    page-rescue db import archived_pages.json

endpoints:
  "POST /report404": '{"url": "..."} -> {"archived": true, "snapshot_url": "..."} or {"archived": false, "ai_reconstruction": "..."}'
  "GET /healthz": '{"status": "ok"}'
  "GET /metrics": "Prometheus text format"

environment:
  OPENAI_API_KEY: "key for reconstructions (name set by llm.api_key_env)"
  PORT: "overrides the port of server.addr"
  PAGE_RESCUE_CONFIG: "config file path (default config.yaml)"

config_example: |
  database:
    path: ./page-rescue.db
  llm:
    model: gpt-4o
    temperature: 0.7
    max_tokens: 800
  evaluation:
    fetch_timeout: 10s
    min_text_length: 50
    extract_mode: denylist   # or readability
    languages: [english]
  cache:
    dir: .page-rescue-cache
    ttl: 24h                 # 0 disables the snapshot cache

evaluation_output: |
  Evaluated N valid page reconstructions:
  Average BLEU Score   : 0.0000
  Average ROUGE-1 F1   : 0.0000
  Average ROUGE-L F1   : 0.0000
`
