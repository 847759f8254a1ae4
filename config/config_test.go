package config

import "testing"

// TestApplyDefaults 缺省值填充
func TestApplyDefaults(t *testing.T) {
	t.Run("Empty config gets full defaults", func(t *testing.T) {
		c := &AppConfig{}
		applyDefaults(c)

		if c.Article.MaxArticles != 10 {
			t.Errorf("MaxArticles = %d, want 10", c.Article.MaxArticles)
		}
		if c.Server.Port != 8080 {
			t.Errorf("Server.Port = %d, want 8080", c.Server.Port)
		}
		if c.Database.Host != "localhost" || c.Database.Port != 5432 {
			t.Errorf("Database addr = %s:%d, want localhost:5432", c.Database.Host, c.Database.Port)
		}
		if c.Database.QueryTimeout != 5 {
			t.Errorf("QueryTimeout = %d, want 5", c.Database.QueryTimeout)
		}
		if c.Database.MaxIdleConns != 5 || c.Database.MaxOpenConns != 20 || c.Database.MaxLifetime != 3600 {
			t.Errorf("Pool defaults = %d/%d/%d, want 5/20/3600",
				c.Database.MaxIdleConns, c.Database.MaxOpenConns, c.Database.MaxLifetime)
		}
	})

	t.Run("Explicit values kept", func(t *testing.T) {
		c := &AppConfig{}
		c.Article.MaxArticles = 3
		c.Database.QueryTimeout = 2
		c.Database.MaxOpenConns = 50
		applyDefaults(c)

		if c.Article.MaxArticles != 3 {
			t.Errorf("MaxArticles = %d, want 3", c.Article.MaxArticles)
		}
		if c.Database.QueryTimeout != 2 {
			t.Errorf("QueryTimeout = %d, want 2", c.Database.QueryTimeout)
		}
		if c.Database.MaxOpenConns != 50 {
			t.Errorf("MaxOpenConns = %d, want 50", c.Database.MaxOpenConns)
		}
	})
}
