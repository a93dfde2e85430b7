package service

import (
	"fmt"
	"sort"
	"time"
)

// AnalyticsService serves demo analytics payloads. No aggregation backend is
// wired up; values are fixed.
type AnalyticsService interface {
	Overview(startDate, endDate string) map[string]interface{}
	Platforms(platform, startDate, endDate string) (map[string]interface{}, error)
	Posts(limit int, sortBy string) map[string]interface{}
	Trends(days int) map[string]interface{}
	Performance(metric string) (map[string]interface{}, error)
}

type analyticsService struct{}

func NewAnalyticsService() AnalyticsService {
	return &analyticsService{}
}

func defaultPeriod(startDate, endDate string) map[string]string {
	if startDate == "" {
		startDate = time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	}
	if endDate == "" {
		endDate = time.Now().Format("2006-01-02")
	}
	return map[string]string{"start_date": startDate, "end_date": endDate}
}

func (s *analyticsService) Overview(startDate, endDate string) map[string]interface{} {
	return map[string]interface{}{
		"period":                  defaultPeriod(startDate, endDate),
		"total_posts":             45,
		"total_engagement":        1250,
		"total_reach":             15000,
		"average_engagement_rate": 0.083,
		"top_performing_platform": "instagram",
		"top_performing_post": map[string]interface{}{
			"id":         123,
			"text":       "Best post of the month! 🚀",
			"engagement": 250,
			"reach":      3000,
		},
	}
}

func (s *analyticsService) Platforms(platform, startDate, endDate string) (map[string]interface{}, error) {
	platformsData := map[string]interface{}{
		"instagram": map[string]interface{}{
			"posts":           20,
			"engagement":      800,
			"reach":           10000,
			"engagement_rate": 0.08,
			"followers":       5000,
		},
		"facebook": map[string]interface{}{
			"posts":           15,
			"engagement":      300,
			"reach":           8000,
			"engagement_rate": 0.0375,
			"followers":       3000,
		},
		"twitter": map[string]interface{}{
			"posts":           10,
			"engagement":      150,
			"reach":           2000,
			"engagement_rate": 0.075,
			"followers":       1000,
		},
	}

	period := defaultPeriod(startDate, endDate)

	if platform != "" {
		data, ok := platformsData[platform]
		if !ok {
			return nil, fmt.Errorf("platform %s not found", platform)
		}
		return map[string]interface{}{
			"platform": platform,
			"period":   period,
			"data":     data,
		}, nil
	}

	return map[string]interface{}{
		"period":    period,
		"platforms": platformsData,
	}, nil
}

func (s *analyticsService) Posts(limit int, sortBy string) map[string]interface{} {
	posts := []map[string]interface{}{
		{
			"id":           1,
			"text":         "Great product! 🎉",
			"platform":     "instagram",
			"published_at": "2024-01-15T10:00:00",
			"engagement":   250,
			"reach":        3000,
			"likes":        200,
			"comments":     30,
			"shares":       20,
		},
		{
			"id":           2,
			"text":         "New arrivals in stock! 📦",
			"platform":     "facebook",
			"published_at": "2024-01-14T15:30:00",
			"engagement":   180,
			"reach":        2500,
			"likes":        150,
			"comments":     20,
			"shares":       10,
		},
	}

	switch sortBy {
	case "reach":
		sort.Slice(posts, func(i, j int) bool { return posts[i]["reach"].(int) > posts[j]["reach"].(int) })
	case "published_at":
		sort.Slice(posts, func(i, j int) bool {
			return posts[i]["published_at"].(string) > posts[j]["published_at"].(string)
		})
	default:
		sort.Slice(posts, func(i, j int) bool { return posts[i]["engagement"].(int) > posts[j]["engagement"].(int) })
	}

	total := len(posts)
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}

	return map[string]interface{}{
		"posts":       posts,
		"total_count": total,
	}
}

func (s *analyticsService) Trends(days int) map[string]interface{} {
	if days <= 0 {
		days = 30
	}
	return map[string]interface{}{
		"period_days": days,
		"trends": map[string]interface{}{
			"engagement_trend": []map[string]interface{}{
				{"date": "2024-01-01", "value": 50},
				{"date": "2024-01-02", "value": 65},
				{"date": "2024-01-03", "value": 45},
				{"date": "2024-01-04", "value": 80},
				{"date": "2024-01-05", "value": 70},
			},
			"reach_trend": []map[string]interface{}{
				{"date": "2024-01-01", "value": 1000},
				{"date": "2024-01-02", "value": 1200},
				{"date": "2024-01-03", "value": 900},
				{"date": "2024-01-04", "value": 1500},
				{"date": "2024-01-05", "value": 1300},
			},
			"top_hashtags": []map[string]interface{}{
				{"hashtag": "#product", "usage": 25},
				{"hashtag": "#quality", "usage": 20},
				{"hashtag": "#newarrival", "usage": 15},
				{"hashtag": "#discount", "usage": 12},
				{"hashtag": "#reviews", "usage": 10},
			},
			"best_posting_times": []map[string]interface{}{
				{"time": "10:00", "engagement": 85},
				{"time": "15:00", "engagement": 75},
				{"time": "18:00", "engagement": 70},
				{"time": "12:00", "engagement": 65},
				{"time": "20:00", "engagement": 60},
			},
		},
	}
}

func (s *analyticsService) Performance(metric string) (map[string]interface{}, error) {
	metrics := map[string]interface{}{
		"engagement_rate": map[string]interface{}{
			"current": 0.083, "previous": 0.075, "change": "+10.7%", "trend": "up",
		},
		"reach": map[string]interface{}{
			"current": 15000, "previous": 12000, "change": "+25%", "trend": "up",
		},
		"followers_growth": map[string]interface{}{
			"current": 5000, "previous": 4500, "change": "+11.1%", "trend": "up",
		},
		"post_frequency": map[string]interface{}{
			"current": 1.5, "previous": 1.2, "change": "+25%", "trend": "up",
		},
	}

	data, ok := metrics[metric]
	if !ok {
		return nil, fmt.Errorf("metric %s is not supported", metric)
	}
	return map[string]interface{}{
		"metric": metric,
		"data":   data,
	}, nil
}
