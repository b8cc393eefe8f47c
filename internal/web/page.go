package web

const indexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>AI Dispute Assistant</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    body { font-family: system-ui, sans-serif; max-width: 720px; margin: 0 auto; padding: 16px; background: #f3f4f6; color: #111827; }
    h1 { font-size: 1.1rem; }
    #chat { background: #fff; border: 1px solid #e5e7eb; border-radius: 8px; min-height: 320px; padding: 12px; overflow-y: auto; }
    .message { margin-bottom: 10px; white-space: pre-wrap; }
    .message.user { text-align: right; color: #2563eb; }
    form { display: flex; gap: 8px; margin-top: 12px; }
    textarea { flex: 1; min-height: 44px; border: 1px solid #d1d5db; border-radius: 8px; padding: 8px; font: inherit; }
    button { border: 0; border-radius: 8px; padding: 10px 20px; background: #2563eb; color: #f9fafb; cursor: pointer; }
    button:disabled { opacity: 0.5; }
  </style>
</head>
<body>
  <h1>AI Dispute Assistant</h1>
  <div id="chat"></div>
  <form id="chat-form">
    <textarea id="message-input" placeholder="Explain your issue, e.g. 'I was charged twice at Store X for $45'"></textarea>
    <button type="submit" id="send-btn">Send</button>
  </form>
  <script>
    const chatEl = document.getElementById("chat");
    const formEl = document.getElementById("chat-form");
    const inputEl = document.getElementById("message-input");
    const sendBtn = document.getElementById("send-btn");

    function addMessage(role, content) {
      const div = document.createElement("div");
      div.className = "message " + role;
      div.textContent = content;
      chatEl.appendChild(div);
      chatEl.scrollTop = chatEl.scrollHeight;
    }

    async function sendMessage(content) {
      addMessage("user", content);
      sendBtn.disabled = true;
      try {
        const res = await fetch("/api/chat", {
          method: "POST",
          headers: { "content-type": "application/json" },
          body: JSON.stringify({ message: content })
        });
        const data = await res.json().catch(() => ({}));
        if (!res.ok) {
          addMessage("assistant", "Error: " + (data.error || "Something went wrong."));
          return;
        }
        addMessage("assistant", data.reply || "[No reply received]");
      } catch (e) {
        addMessage("assistant", "Network error while contacting the assistant.");
      } finally {
        sendBtn.disabled = false;
      }
    }

    formEl.addEventListener("submit", (e) => {
      e.preventDefault();
      const value = inputEl.value.trim();
      if (!value) return;
      inputEl.value = "";
      sendMessage(value);
    });

    addMessage("assistant", "Hi! I can help you describe and organize a transaction dispute. Tell me what happened, including where you were charged, the amount, and what went wrong.");
  </script>
</body>
</html>`
