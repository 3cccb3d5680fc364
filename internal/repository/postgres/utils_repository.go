package postgres

import (
	"fmt"
	"strings"
)

// likeEscaper экранирует метасимволы LIKE; в запросах используется ESCAPE '\'
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern строит шаблон ILIKE для поиска подстроки
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// whereBuilder собирает условия WHERE с позиционными параметрами $n
type whereBuilder struct {
	conditions []string
	args       []interface{}
}

func newWhereBuilder(args ...interface{}) *whereBuilder {
	return &whereBuilder{args: args}
}

// arg добавляет параметр и возвращает его плейсхолдер
func (b *whereBuilder) arg(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// add добавляет условие; %s в format заменяются плейсхолдерами для values (один параметр может использоваться несколько раз через %[1]s)
func (b *whereBuilder) add(format string, values ...interface{}) {
	placeholders := make([]interface{}, len(values))
	for i, v := range values {
		placeholders[i] = b.arg(v)
	}
	b.conditions = append(b.conditions, fmt.Sprintf(format, placeholders...))
}

func (b *whereBuilder) sql() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conditions, " AND ")
}
