package handlers

import (
	"fmt"
	"strings"
	"text/template"
)

// The embeddable tracker. It opens the session with a quiz_visited event
// carrying the client-side device/browser/os classification, then exposes
// global track* hooks for the quiz page to call. All failures are swallowed
// client-side; tracking must never break the quiz itself.
var trackerSnippetTemplate = template.Must(template.New("tracker").Parse(`(function() {
  var QUIZ_ID = "{{.QuizID}}";
  var TRACKING_CODE = "{{.TrackingCode}}";
  var SESSION_ID = "{{.SessionID}}";
  var API_URL = window.location.origin;

  var questionTimings = {};
  var currentQuestion = null;
  var quizStartTime = null;
  var lastActivityTime = Date.now();

  function send(payload) {
    payload.session_id = SESSION_ID;
    payload.quiz_id = QUIZ_ID;
    fetch(API_URL + "/api/event", {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify(payload)
    }).catch(function(err) { console.error("Tracking error:", err); });
  }

  function initSession() {
    send({
      event_type: "quiz_visited",
      device: getDevice(),
      browser: getBrowser(),
      os: getOS(),
      referrer: document.referrer,
      utm_source: getUTMParam("utm_source")
    });
  }

  window.trackQuizStart = function() {
    if (!quizStartTime) {
      quizStartTime = Date.now();
      send({
        event_type: "quiz_started",
        timestamp_event: new Date().toISOString()
      });
    }
  };

  window.trackQuestionView = function(questionId, questionOrder) {
    currentQuestion = { id: questionId, order: questionOrder };
    questionTimings[questionId] = Date.now();
    send({
      event_type: "question_viewed",
      question_id: questionId,
      question_order: questionOrder,
      timestamp_event: new Date().toISOString()
    });
  };

  window.trackAnswer = function(questionId, answerValue) {
    var timeSpent = Date.now() - (questionTimings[questionId] || Date.now());
    send({
      event_type: "answer_submitted",
      question_id: questionId,
      answer_value: answerValue,
      time_spent: Math.round(timeSpent / 1000),
      timestamp_event: new Date().toISOString()
    });
  };

  window.trackQuizComplete = function() {
    var totalTime = Date.now() - quizStartTime;
    send({
      event_type: "quiz_completed",
      time_spent: Math.round(totalTime / 1000),
      timestamp_event: new Date().toISOString()
    });
  };

  window.trackAbandon = function(reason) {
    var totalTime = Date.now() - (quizStartTime || lastActivityTime);
    var payload = {
      event_type: "quiz_abandoned",
      answer_value: reason || "unknown",
      time_spent: Math.round(totalTime / 1000),
      timestamp_event: new Date().toISOString()
    };
    if (currentQuestion) {
      payload.question_id = currentQuestion.id;
      payload.question_order = currentQuestion.order;
    }
    send(payload);
  };

  function getDevice() {
    return /iPad/.test(navigator.userAgent) ? "tablet" :
           /Android|webOS|iPhone|IEMobile|Opera Mini/i.test(navigator.userAgent) ? "mobile" : "desktop";
  }

  function getBrowser() {
    var ua = navigator.userAgent;
    if (ua.indexOf("Firefox") > -1) return "Firefox";
    if (ua.indexOf("Chrome") > -1) return "Chrome";
    if (ua.indexOf("Safari") > -1) return "Safari";
    if (ua.indexOf("Edge") > -1) return "Edge";
    return "Unknown";
  }

  function getOS() {
    if (navigator.userAgent.indexOf("Win") > -1) return "Windows";
    if (navigator.userAgent.indexOf("Mac") > -1) return "MacOS";
    if (navigator.userAgent.indexOf("Linux") > -1) return "Linux";
    if (navigator.userAgent.indexOf("Android") > -1) return "Android";
    if (navigator.userAgent.indexOf("iPhone") > -1) return "iOS";
    return "Unknown";
  }

  function getUTMParam(param) {
    var url = new URL(window.location);
    return url.searchParams.get(param) || "";
  }

  window.addEventListener("beforeunload", function() {
    if (quizStartTime && !window.quizCompleted) {
      trackAbandon("page_unload");
    }
  });

  initSession();
})();
`))

type trackerSnippetData struct {
	QuizID       string
	TrackingCode string
	SessionID    string
}

// RenderTrackerSnippet builds the per-request tracker script. The session id
// is minted server-side per snippet fetch, so every page load gets its own
// session.
func RenderTrackerSnippet(quizID, trackingCode, sessionID string) (string, error) {
	var sb strings.Builder
	err := trackerSnippetTemplate.Execute(&sb, trackerSnippetData{
		QuizID:       quizID,
		TrackingCode: trackingCode,
		SessionID:    sessionID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render tracker snippet: %w", err)
	}
	return sb.String(), nil
}
